package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmoney-cli/mmoney/pkg/monarch"
)

func newHoldingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holdings",
		Short: "Investment holdings and balance history",
	}
	cmd.AddCommand(newHoldingsListCmd(app))
	cmd.AddCommand(newHoldingsHistoryCmd(app))
	cmd.AddCommand(newHoldingsSnapshotsCmd(app))
	cmd.AddCommand(newHoldingsBalancesCmd(app))
	return cmd
}

func newHoldingsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list ACCOUNT_ID",
		Short: "List holdings for an investment account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetAccountHoldings(ctx, args[0])
			})
		},
	}
}

func newHoldingsHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history ACCOUNT_ID",
		Short: "Balance history for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetAccountHistory(ctx, args[0])
			})
		},
	}
}

func newHoldingsSnapshotsCmd(app *App) *cobra.Command {
	var filters monarch.SnapshotFilters

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Aggregate balance snapshots over time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDates(map[string]string{
				"start-date": filters.StartDate,
				"end-date":   filters.EndDate,
			}); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetAggregateSnapshots(ctx, filters)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&filters.StartDate, "start-date", "s", "", "Start date (YYYY-MM-DD)")
	flags.StringVarP(&filters.EndDate, "end-date", "e", "", "End date (YYYY-MM-DD)")
	flags.StringVarP(&filters.AccountType, "account-type", "t", "", "Filter by account type")

	return cmd
}

func newHoldingsBalancesCmd(app *App) *cobra.Command {
	var startDate string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Recent balances for every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDate("start-date", startDate); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetRecentAccountBalances(ctx, startDate)
			})
		},
	}
	cmd.Flags().StringVarP(&startDate, "start-date", "s", "", "Start date (YYYY-MM-DD)")
	return cmd
}
