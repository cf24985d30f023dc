package monarch

import "context"

const queryGetInstitutions = `query Web_GetInstitutionSettings {
  credentials {
    id
    updateRequired
    dataProvider
    disconnectedFromDataProviderAt
    institution { id name url status }
  }
}`

// GetInstitutions lists the linked institutions and their credentials.
func (c *Client) GetInstitutions(ctx context.Context) (any, error) {
	return c.gql(ctx, "Web_GetInstitutionSettings", queryGetInstitutions, nil)
}

const queryGetSubscription = `query GetSubscriptionDetails {
  subscription {
    id
    paymentSource
    referralCode
    isOnFreeTrial
    hasPremiumEntitlement
  }
}`

// GetSubscriptionDetails fetches the household subscription status.
func (c *Client) GetSubscriptionDetails(ctx context.Context) (any, error) {
	return c.gql(ctx, "GetSubscriptionDetails", queryGetSubscription, nil)
}
