package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmoney-cli/mmoney/pkg/monarch"
)

func newRecurringCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Recurring transactions",
	}

	var startDate, endDate string
	list := &cobra.Command{
		Use:   "list",
		Short: "List upcoming recurring transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDates(map[string]string{
				"start-date": startDate,
				"end-date":   endDate,
			}); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetRecurringTransactions(ctx, startDate, endDate)
			})
		},
	}
	flags := list.Flags()
	flags.StringVarP(&startDate, "start-date", "s", "", "Start date (YYYY-MM-DD)")
	flags.StringVarP(&endDate, "end-date", "e", "", "End date (YYYY-MM-DD)")

	cmd.AddCommand(list)
	return cmd
}

func newInstitutionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "institutions",
		Short: "Linked financial institutions",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List linked institutions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetInstitutions(ctx)
			})
		},
	})
	return cmd
}

func newSubscriptionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Monarch subscription details",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show subscription status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetSubscriptionDetails(ctx)
			})
		},
	})
	return cmd
}
