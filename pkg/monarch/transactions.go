package monarch

import (
	"context"
)

const queryGetTransactions = `query GetTransactionsList($offset: Int, $limit: Int, $filters: TransactionFilterInput, $orderBy: TransactionOrdering) {
  allTransactions(filters: $filters) {
    totalCount
    results(offset: $offset, limit: $limit, orderBy: $orderBy) {
      id
      amount
      date
      hideFromReports
      pending
      notes
      isRecurring
      needsReview
      attachments { id }
      category { id name }
      merchant { id name }
      account { id displayName }
      tags { id name }
    }
  }
}`

// TransactionFilters narrows a transaction listing. Zero values mean no
// filter; boolean filters are tri-state.
type TransactionFilters struct {
	Limit          int
	Offset         int
	StartDate      string
	EndDate        string
	Search         string
	CategoryIDs    []string
	AccountIDs     []string
	TagIDs         []string
	HasAttachments *bool
	HasNotes       *bool
	IsSplit        *bool
	IsRecurring    *bool
}

// GetTransactions lists transactions matching the filters, newest first.
func (c *Client) GetTransactions(ctx context.Context, filters TransactionFilters) (any, error) {
	if filters.Limit <= 0 {
		filters.Limit = 100
	}
	f := map[string]any{
		"search":     filters.Search,
		"categories": emptyIfNil(filters.CategoryIDs),
		"accounts":   emptyIfNil(filters.AccountIDs),
		"tags":       emptyIfNil(filters.TagIDs),
	}
	if filters.StartDate != "" {
		f["startDate"] = filters.StartDate
	}
	if filters.EndDate != "" {
		f["endDate"] = filters.EndDate
	}
	setOptional(f, "hasAttachments", filters.HasAttachments)
	setOptional(f, "hasNotes", filters.HasNotes)
	setOptional(f, "isSplit", filters.IsSplit)
	setOptional(f, "isRecurring", filters.IsRecurring)

	return c.gql(ctx, "GetTransactionsList", queryGetTransactions, map[string]any{
		"offset":  filters.Offset,
		"limit":   filters.Limit,
		"filters": f,
		"orderBy": "date",
	})
}

const queryTransactionDetails = `query GetTransactionDrawer($id: UUID!) {
  getTransaction(id: $id) {
    id
    amount
    date
    pending
    notes
    hideFromReports
    needsReview
    isSplitTransaction
    category { id name }
    merchant { id name }
    account { id displayName }
    tags { id name }
  }
}`

// GetTransactionDetails fetches a single transaction.
func (c *Client) GetTransactionDetails(ctx context.Context, transactionID string) (any, error) {
	return c.gql(ctx, "GetTransactionDrawer", queryTransactionDetails, map[string]any{"id": transactionID})
}

const queryTransactionsSummary = `query GetTransactionsSummary {
  aggregates(fillEmptyValues: true) {
    summary {
      count
      sum
      sumIncome
      sumExpense
      avg
      max
      first
      last
    }
  }
}`

// GetTransactionsSummary fetches aggregate figures across all transactions.
func (c *Client) GetTransactionsSummary(ctx context.Context) (any, error) {
	return c.gql(ctx, "GetTransactionsSummary", queryTransactionsSummary, nil)
}

const queryTransactionSplits = `query TransactionSplitQuery($id: UUID!) {
  getTransaction(id: $id) {
    id
    amount
    splitTransactions {
      id
      amount
      notes
      merchant { id name }
      category { id name }
    }
  }
}`

// GetTransactionSplits fetches the splits of a transaction.
func (c *Client) GetTransactionSplits(ctx context.Context, transactionID string) (any, error) {
	return c.gql(ctx, "TransactionSplitQuery", queryTransactionSplits, map[string]any{"id": transactionID})
}

const mutationCreateTransaction = `mutation Web_TransactionsCreateTransaction($input: CreateTransactionMutationInput!) {
  createTransaction(input: $input) {
    transaction { id }
    errors { message }
  }
}`

// TransactionInput describes a transaction to create.
type TransactionInput struct {
	Date          string
	AccountID     string
	Amount        float64
	MerchantName  string
	CategoryID    string
	Notes         string
	UpdateBalance bool
}

// CreateTransaction creates a manual transaction.
func (c *Client) CreateTransaction(ctx context.Context, input TransactionInput) (any, error) {
	return c.gql(ctx, "Web_TransactionsCreateTransaction", mutationCreateTransaction, map[string]any{
		"input": map[string]any{
			"date":                input.Date,
			"accountId":           input.AccountID,
			"amount":              input.Amount,
			"merchantName":        input.MerchantName,
			"categoryId":          input.CategoryID,
			"notes":               input.Notes,
			"shouldUpdateBalance": input.UpdateBalance,
		},
	})
}

const mutationUpdateTransaction = `mutation Web_TransactionDrawerUpdateTransaction($input: UpdateTransactionMutationInput!) {
  updateTransaction(input: $input) {
    transaction { id amount date notes hideFromReports needsReview category { id } merchant { id name } }
    errors { message }
  }
}`

// TransactionUpdate carries the optional fields of a transaction update;
// nil fields are left unchanged.
type TransactionUpdate struct {
	CategoryID      *string
	MerchantName    *string
	Amount          *float64
	Date            *string
	Notes           *string
	HideFromReports *bool
	NeedsReview     *bool
}

// UpdateTransaction updates a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, transactionID string, update TransactionUpdate) (any, error) {
	input := map[string]any{"id": transactionID}
	setOptional(input, "category", update.CategoryID)
	setOptional(input, "name", update.MerchantName)
	setOptional(input, "amount", update.Amount)
	setOptional(input, "date", update.Date)
	setOptional(input, "notes", update.Notes)
	setOptional(input, "hideFromReports", update.HideFromReports)
	setOptional(input, "needsReview", update.NeedsReview)
	return c.gql(ctx, "Web_TransactionDrawerUpdateTransaction", mutationUpdateTransaction, map[string]any{"input": input})
}

const mutationDeleteTransaction = `mutation Common_DeleteTransactionMutation($input: DeleteTransactionMutationInput!) {
  deleteTransaction(input: $input) {
    deleted
    errors { message }
  }
}`

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, transactionID string) (any, error) {
	return c.gql(ctx, "Common_DeleteTransactionMutation", mutationDeleteTransaction, map[string]any{
		"input": map[string]any{"transactionId": transactionID},
	})
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
