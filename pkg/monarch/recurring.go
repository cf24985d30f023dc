package monarch

import "context"

const queryGetRecurring = `query Web_GetUpcomingRecurringTransactionItems($startDate: Date!, $endDate: Date!) {
  recurringTransactionItems(startDate: $startDate, endDate: $endDate) {
    stream { id frequency amount merchant { id name } }
    date
    isPast
    amount
    transactionId
    account { id displayName }
  }
}`

// GetRecurringTransactions lists upcoming recurring transaction items in
// the given date range.
func (c *Client) GetRecurringTransactions(ctx context.Context, startDate, endDate string) (any, error) {
	return c.gql(ctx, "Web_GetUpcomingRecurringTransactionItems", queryGetRecurring, map[string]any{
		"startDate": startDate,
		"endDate":   endDate,
	})
}
