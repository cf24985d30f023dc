package monarch

import (
	"context"
	"time"

	"github.com/mmoney-cli/mmoney/pkg/ordered"
)

const queryGetAccounts = `query GetAccounts {
  accounts {
    id
    displayName
    syncDisabled
    deactivatedAt
    isHidden
    isAsset
    includeInNetWorth
    currentBalance
    displayBalance
    updatedAt
    type { name display }
    subtype { name display }
    institution { id name }
  }
}`

// GetAccounts lists all accounts in the household.
func (c *Client) GetAccounts(ctx context.Context) (any, error) {
	return c.gql(ctx, "GetAccounts", queryGetAccounts, nil)
}

const queryAccountTypeOptions = `query GetAccountTypeOptions {
  accountTypeOptions {
    type { name display }
    subtypes { name display }
  }
}`

// GetAccountTypeOptions lists the account types and subtypes available when
// creating a manual account.
func (c *Client) GetAccountTypeOptions(ctx context.Context) (any, error) {
	return c.gql(ctx, "GetAccountTypeOptions", queryAccountTypeOptions, nil)
}

const mutationCreateManualAccount = `mutation Web_CreateManualAccount($input: CreateManualAccountMutationInput!) {
  createManualAccount(input: $input) {
    account { id displayName currentBalance }
    errors { message }
  }
}`

// ManualAccountInput describes a manual account to create.
type ManualAccountInput struct {
	Name              string
	Type              string
	Subtype           string
	Balance           float64
	IncludeInNetWorth bool
}

// CreateManualAccount creates an account not linked to any institution.
func (c *Client) CreateManualAccount(ctx context.Context, input ManualAccountInput) (any, error) {
	return c.gql(ctx, "Web_CreateManualAccount", mutationCreateManualAccount, map[string]any{
		"input": map[string]any{
			"name":              input.Name,
			"type":              input.Type,
			"subtype":           input.Subtype,
			"displayBalance":    input.Balance,
			"includeInNetWorth": input.IncludeInNetWorth,
		},
	})
}

const mutationUpdateAccount = `mutation Web_UpdateAccount($input: UpdateAccountMutationInput!) {
  updateAccount(input: $input) {
    account { id displayName currentBalance includeInNetWorth hideFromList hideTransactionsFromReports }
    errors { message }
  }
}`

// AccountUpdate carries the optional fields of an account update; nil
// fields are left unchanged.
type AccountUpdate struct {
	Name                        *string
	Balance                     *float64
	Type                        *string
	Subtype                     *string
	IncludeInNetWorth           *bool
	HideFromSummary             *bool
	HideTransactionsFromReports *bool
}

// UpdateAccount updates an account.
func (c *Client) UpdateAccount(ctx context.Context, accountID string, update AccountUpdate) (any, error) {
	input := map[string]any{"id": accountID}
	setOptional(input, "name", update.Name)
	setOptional(input, "displayBalance", update.Balance)
	setOptional(input, "type", update.Type)
	setOptional(input, "subtype", update.Subtype)
	setOptional(input, "includeInNetWorth", update.IncludeInNetWorth)
	setOptional(input, "hideFromList", update.HideFromSummary)
	setOptional(input, "hideTransactionsFromReports", update.HideTransactionsFromReports)
	return c.gql(ctx, "Web_UpdateAccount", mutationUpdateAccount, map[string]any{"input": input})
}

const mutationDeleteAccount = `mutation Web_DeleteAccount($id: UUID!) {
  deleteAccount(id: $id) {
    deleted
    errors { message }
  }
}`

// DeleteAccount deletes an account and all of its transactions.
func (c *Client) DeleteAccount(ctx context.Context, accountID string) (any, error) {
	return c.gql(ctx, "Web_DeleteAccount", mutationDeleteAccount, map[string]any{"id": accountID})
}

const mutationForceRefreshAccounts = `mutation Web_ForceRefreshAccounts($input: ForceRefreshAccountsInput!) {
  forceRefreshAccounts(input: $input) {
    success
    errors { message }
  }
}`

// RequestAccountsRefresh asks the linked institutions to refresh. An empty
// accountIDs slice refreshes every account.
func (c *Client) RequestAccountsRefresh(ctx context.Context, accountIDs []string) (bool, error) {
	if accountIDs == nil {
		accountIDs = []string{}
	}
	result, err := c.gql(ctx, "Web_ForceRefreshAccounts", mutationForceRefreshAccounts, map[string]any{
		"input": map[string]any{"accountIds": accountIDs},
	})
	if err != nil {
		return false, err
	}
	return boolAt(result, "forceRefreshAccounts", "success"), nil
}

const queryRefreshStatus = `query GetAccountsRefreshStatus {
  accounts {
    id
    hasSyncInProgress
  }
}`

// IsAccountsRefreshComplete reports whether no account in accountIDs (or
// any account, when empty) still has a sync in progress.
func (c *Client) IsAccountsRefreshComplete(ctx context.Context, accountIDs []string) (bool, error) {
	result, err := c.gql(ctx, "GetAccountsRefreshStatus", queryRefreshStatus, nil)
	if err != nil {
		return false, err
	}
	data, ok := result.(*ordered.Map)
	if !ok {
		return false, nil
	}
	accounts, _ := data.Get("accounts")
	seq, ok := accounts.([]any)
	if !ok {
		return false, nil
	}
	wanted := map[string]bool{}
	for _, id := range accountIDs {
		wanted[id] = true
	}
	for _, item := range seq {
		account, ok := item.(*ordered.Map)
		if !ok {
			continue
		}
		if len(wanted) > 0 {
			id, _ := account.Get("id")
			s, _ := id.(string)
			if !wanted[s] {
				continue
			}
		}
		if syncing, ok := account.Get("hasSyncInProgress"); ok {
			if b, ok := syncing.(bool); ok && b {
				return false, nil
			}
		}
	}
	return true, nil
}

// RequestAccountsRefreshAndWait starts a refresh and polls until every
// requested account finished syncing or timeout elapsed. The single
// pass/fail outcome is returned after the poll loop completes.
func (c *Client) RequestAccountsRefreshAndWait(ctx context.Context, accountIDs []string, timeout, interval time.Duration) (bool, error) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	started, err := c.RequestAccountsRefresh(ctx, accountIDs)
	if err != nil {
		return false, err
	}
	if !started {
		return false, nil
	}

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		done, err := c.IsAccountsRefreshComplete(ctx, accountIDs)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		if time.Now().After(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, classifyTransportError(ctx.Err())
		case <-ticker.C:
		}
	}
}

// setOptional adds key to input only when the value is present.
func setOptional[T any](input map[string]any, key string, value *T) {
	if value != nil {
		input[key] = *value
	}
}

// boolAt digs a boolean out of a nested ordered response.
func boolAt(result any, keys ...string) bool {
	current := result
	for _, key := range keys {
		m, ok := current.(*ordered.Map)
		if !ok {
			return false
		}
		current, ok = m.Get(key)
		if !ok {
			return false
		}
	}
	b, ok := current.(bool)
	return ok && b
}
