package monarch

import "context"

const queryGetBudgets = `query Common_GetJointPlanningData($startDate: Date!, $endDate: Date!) {
  budgetData(startMonth: $startDate, endMonth: $endDate) {
    monthlyAmountsByCategory {
      category { id name }
      monthlyAmounts { month plannedCashFlowAmount actualAmount remainingAmount rolloverType }
    }
    totalsByMonth {
      month
      totalIncome { plannedAmount actualAmount }
      totalExpenses { plannedAmount actualAmount }
    }
  }
}`

// GetBudgets fetches budget data for the given month range. Empty dates
// default server-side to the current month.
func (c *Client) GetBudgets(ctx context.Context, startDate, endDate string) (any, error) {
	return c.gql(ctx, "Common_GetJointPlanningData", queryGetBudgets, map[string]any{
		"startDate": startDate,
		"endDate":   endDate,
	})
}

const mutationSetBudgetAmount = `mutation Common_UpdateBudgetItem($input: UpdateOrCreateBudgetItemMutationInput!) {
  updateOrCreateBudgetItem(input: $input) {
    budgetItem { id budgetAmount }
    errors { message }
  }
}`

// BudgetAmountInput describes a budget amount to set for a category or a
// category group.
type BudgetAmountInput struct {
	Amount          float64
	CategoryID      string
	CategoryGroupID string
	Timeframe       string
	StartDate       string
	ApplyToFuture   bool
}

// SetBudgetAmount sets the budgeted amount for one timeframe.
func (c *Client) SetBudgetAmount(ctx context.Context, input BudgetAmountInput) (any, error) {
	timeframe := input.Timeframe
	if timeframe == "" {
		timeframe = "month"
	}
	variables := map[string]any{
		"amount":        input.Amount,
		"timeframe":     timeframe,
		"applyToFuture": input.ApplyToFuture,
	}
	if input.CategoryID != "" {
		variables["categoryId"] = input.CategoryID
	}
	if input.CategoryGroupID != "" {
		variables["categoryGroupId"] = input.CategoryGroupID
	}
	if input.StartDate != "" {
		variables["startDate"] = input.StartDate
	}
	return c.gql(ctx, "Common_UpdateBudgetItem", mutationSetBudgetAmount, map[string]any{"input": variables})
}
