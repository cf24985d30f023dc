package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmoney-cli/mmoney/pkg/monarch"
)

func newCashflowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Cashflow analysis",
	}
	cmd.AddCommand(newCashflowSummaryCmd(app))
	cmd.AddCommand(newCashflowDetailsCmd(app))
	return cmd
}

func newCashflowSummaryCmd(app *App) *cobra.Command {
	var startDate, endDate string
	var limit int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Cashflow summary (income, expenses, savings)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDates(map[string]string{
				"start-date": startDate,
				"end-date":   endDate,
			}); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetCashflowSummary(ctx, startDate, endDate, limit)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&startDate, "start-date", "s", "", "Start date (YYYY-MM-DD)")
	flags.StringVarP(&endDate, "end-date", "e", "", "End date (YYYY-MM-DD)")
	flags.IntVarP(&limit, "limit", "l", 100, "Record limit")

	return cmd
}

func newCashflowDetailsCmd(app *App) *cobra.Command {
	var startDate, endDate string
	var limit int

	cmd := &cobra.Command{
		Use:   "details",
		Short: "Cashflow broken down by category and merchant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDates(map[string]string{
				"start-date": startDate,
				"end-date":   endDate,
			}); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetCashflow(ctx, startDate, endDate, limit)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&startDate, "start-date", "s", "", "Start date (YYYY-MM-DD)")
	flags.StringVarP(&endDate, "end-date", "e", "", "End date (YYYY-MM-DD)")
	flags.IntVarP(&limit, "limit", "l", 100, "Record limit")

	return cmd
}
