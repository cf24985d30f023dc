package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmoney-cli/mmoney/pkg/gate"
	"github.com/mmoney-cli/mmoney/pkg/monarch"
)

func newBudgetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Budget queries and management",
	}
	cmd.AddCommand(newBudgetsListCmd(app))
	cmd.AddCommand(newBudgetsSetCmd(app))
	return cmd
}

func newBudgetsListCmd(app *App) *cobra.Command {
	var startDate, endDate string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDates(map[string]string{
				"start-date": startDate,
				"end-date":   endDate,
			}); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetBudgets(ctx, startDate, endDate)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&startDate, "start-date", "s", "", "Start date (YYYY-MM-DD)")
	flags.StringVarP(&endDate, "end-date", "e", "", "End date (YYYY-MM-DD)")

	return cmd
}

func newBudgetsSetCmd(app *App) *cobra.Command {
	var input monarch.BudgetAmountInput

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a budget amount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("amount") {
				return missingField("missing required flag(s): --amount",
					"Provide the budget amount.")
			}
			if input.CategoryID == "" && input.CategoryGroupID == "" {
				return missingField(
					"either --category-id or --category-group-id is required",
					"Name the category or category group whose budget to set.")
			}
			if err := validateDate("start-date", input.StartDate); err != nil {
				return err
			}
			if err := gate.Check(app.allowMutations); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.SetBudgetAmount(ctx, input)
			})
		},
	}

	flags := cmd.Flags()
	flags.Float64VarP(&input.Amount, "amount", "a", 0, "Budget amount")
	flags.StringVarP(&input.CategoryID, "category-id", "c", "", "Category ID")
	flags.StringVarP(&input.CategoryGroupID, "category-group-id", "g", "", "Category group ID")
	flags.StringVar(&input.Timeframe, "timeframe", "month", "Timeframe (month, etc.)")
	flags.StringVarP(&input.StartDate, "start-date", "s", "", "Start date (YYYY-MM-DD)")
	flags.BoolVar(&input.ApplyToFuture, "apply-to-future", false, "Apply to future months")

	return cmd
}
