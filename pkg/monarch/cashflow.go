package monarch

import "context"

const queryGetCashflow = `query Web_GetCashFlowPage($filters: TransactionFilterInput, $limit: Int) {
  byCategory: aggregates(filters: $filters, groupBy: ["category"], limit: $limit) {
    groupBy { category { id name group { id type } } }
    summary { sum }
  }
  byMerchant: aggregates(filters: $filters, groupBy: ["merchant"], limit: $limit) {
    groupBy { merchant { id name } }
    summary { sum }
  }
}`

// GetCashflow fetches cashflow broken down by category and merchant.
func (c *Client) GetCashflow(ctx context.Context, startDate, endDate string, limit int) (any, error) {
	if limit <= 0 {
		limit = 100
	}
	return c.gql(ctx, "Web_GetCashFlowPage", queryGetCashflow, map[string]any{
		"filters": dateFilters(startDate, endDate),
		"limit":   limit,
	})
}

const queryGetCashflowSummary = `query Web_GetCashFlowSummary($filters: TransactionFilterInput) {
  summary: aggregates(filters: $filters, fillEmptyValues: true) {
    summary { sumIncome sumExpense savings savingsRate }
  }
}`

// GetCashflowSummary fetches income, expenses, and savings for the period.
func (c *Client) GetCashflowSummary(ctx context.Context, startDate, endDate string, limit int) (any, error) {
	_ = limit // accepted for CLI symmetry; the summary is a single row
	return c.gql(ctx, "Web_GetCashFlowSummary", queryGetCashflowSummary, map[string]any{
		"filters": dateFilters(startDate, endDate),
	})
}

func dateFilters(startDate, endDate string) map[string]any {
	filters := map[string]any{}
	if startDate != "" {
		filters["startDate"] = startDate
	}
	if endDate != "" {
		filters["endDate"] = endDate
	}
	return filters
}
