package monarch

import "context"

const queryGetHoldings = `query Web_GetHoldings($input: PortfolioInput) {
  portfolio(input: $input) {
    aggregateHoldings {
      edges {
        node {
          id
          quantity
          basis
          totalValue
          securityPriceChangeDollars
          securityPriceChangePercent
          holdings { id quantity value account { id displayName } }
          security { id name ticker currentPrice }
        }
      }
    }
  }
}`

// GetAccountHoldings lists the investment holdings of an account.
func (c *Client) GetAccountHoldings(ctx context.Context, accountID string) (any, error) {
	return c.gql(ctx, "Web_GetHoldings", queryGetHoldings, map[string]any{
		"input": map[string]any{"accountIds": []string{accountID}},
	})
}

const queryGetAccountHistory = `query AccountDetails_getAccount($id: UUID!) {
  account(id: $id) {
    id
    displayName
    snapshots: recentBalances
  }
  snapshotsByAccountType(accountType: "", timeframe: year) {
    accountType
    month
    balance
  }
}`

// GetAccountHistory fetches the balance history of an account.
func (c *Client) GetAccountHistory(ctx context.Context, accountID string) (any, error) {
	return c.gql(ctx, "AccountDetails_getAccount", queryGetAccountHistory, map[string]any{"id": accountID})
}

const queryGetAggregateSnapshots = `query GetAggregateSnapshots($filters: AggregateSnapshotFilters) {
  aggregateSnapshots(filters: $filters) {
    date
    balance
    assetsBalance
    liabilitiesBalance
  }
}`

// SnapshotFilters narrows an aggregate snapshot query.
type SnapshotFilters struct {
	StartDate   string
	EndDate     string
	AccountType string
}

// GetAggregateSnapshots fetches aggregate balance snapshots over time.
func (c *Client) GetAggregateSnapshots(ctx context.Context, filters SnapshotFilters) (any, error) {
	f := map[string]any{}
	if filters.StartDate != "" {
		f["startDate"] = filters.StartDate
	}
	if filters.EndDate != "" {
		f["endDate"] = filters.EndDate
	}
	if filters.AccountType != "" {
		f["accountType"] = filters.AccountType
	}
	return c.gql(ctx, "GetAggregateSnapshots", queryGetAggregateSnapshots, map[string]any{"filters": f})
}

const queryGetRecentBalances = `query GetAccountRecentBalances($startDate: Date) {
  accounts {
    id
    displayName
    recentBalances(startDate: $startDate)
  }
}`

// GetRecentAccountBalances fetches recent daily balances for every account.
func (c *Client) GetRecentAccountBalances(ctx context.Context, startDate string) (any, error) {
	variables := map[string]any{}
	if startDate != "" {
		variables["startDate"] = startDate
	}
	return c.gql(ctx, "GetAccountRecentBalances", queryGetRecentBalances, variables)
}
