package cli

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mmoney-cli/mmoney/pkg/gate"
	"github.com/mmoney-cli/mmoney/pkg/monarch"
)

func newAccountsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account management",
	}
	cmd.AddCommand(newAccountsListCmd(app))
	cmd.AddCommand(newAccountsTypesCmd(app))
	cmd.AddCommand(newAccountsCreateCmd(app))
	cmd.AddCommand(newAccountsUpdateCmd(app))
	cmd.AddCommand(newAccountsDeleteCmd(app))
	cmd.AddCommand(newAccountsRefreshCmd(app))
	cmd.AddCommand(newAccountsRefreshStatusCmd(app))
	return cmd
}

func newAccountsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetAccounts(ctx)
			})
		},
	}
}

func newAccountsTypesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List available account types and subtypes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetAccountTypeOptions(ctx)
			})
		},
	}
}

func newAccountsCreateCmd(app *App) *cobra.Command {
	var input monarch.ManualAccountInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a manual account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(map[string]string{
				"name": input.Name, "type": input.Type, "subtype": input.Subtype,
			}); err != nil {
				return err
			}
			if err := gate.Check(app.allowMutations); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.CreateManualAccount(ctx, input)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input.Name, "name", "n", "", "Account name")
	flags.StringVar(&input.Type, "type", "", "Account type")
	flags.StringVar(&input.Subtype, "subtype", "", "Account subtype")
	flags.Float64VarP(&input.Balance, "balance", "b", 0, "Initial balance")
	flags.BoolVar(&input.IncludeInNetWorth, "in-net-worth", true, "Include in net worth")

	return cmd
}

func newAccountsUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ACCOUNT_ID",
		Short: "Update an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gate.Check(app.allowMutations); err != nil {
				return err
			}
			fs := cmd.Flags()
			update := monarch.AccountUpdate{
				Name:                        optionalString(fs, "name"),
				Balance:                     optionalFloat(fs, "balance"),
				Type:                        optionalString(fs, "type"),
				Subtype:                     optionalString(fs, "subtype"),
				IncludeInNetWorth:           optionalBool(fs, "in-net-worth"),
				HideFromSummary:             optionalBool(fs, "hide-from-summary"),
				HideTransactionsFromReports: optionalBool(fs, "hide-transactions"),
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.UpdateAccount(ctx, args[0], update)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringP("name", "n", "", "Account name")
	flags.Float64P("balance", "b", 0, "Account balance")
	flags.String("type", "", "Account type")
	flags.String("subtype", "", "Account subtype")
	flags.Bool("in-net-worth", false, "Include in net worth")
	flags.Bool("hide-from-summary", false, "Hide from summary list")
	flags.Bool("hide-transactions", false, "Hide transactions from reports")

	return cmd
}

func newAccountsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ACCOUNT_ID",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gate.Check(app.allowMutations); err != nil {
				return err
			}
			if err := app.confirmOrAbort(cmd, "Are you sure you want to delete this account?"); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.DeleteAccount(ctx, args[0])
			})
		},
	}
	addYesFlag(cmd)
	return cmd
}

func newAccountsRefreshCmd(app *App) *cobra.Command {
	var (
		accountIDs []string
		wait       bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh account data from institutions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := app.client()
			ctx := cmd.Context()

			if !wait {
				started, err := client.RequestAccountsRefresh(ctx, accountIDs)
				if err != nil {
					return err
				}
				app.infof("Refresh started: %v", started)
				return nil
			}

			spinner, _ := pterm.DefaultSpinner.
				WithWriter(app.stderr).
				Start("Refreshing accounts...")
			done, err := client.RequestAccountsRefreshAndWait(ctx, accountIDs, timeout, 2*time.Second)
			if spinner != nil {
				_ = spinner.Stop()
			}
			if err != nil {
				return err
			}
			app.infof("Refresh complete: %v", done)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&accountIDs, "account-ids", "a", nil, "Account IDs to refresh (default: all)")
	flags.BoolVar(&wait, "wait", true, "Wait for refresh to complete")
	flags.DurationVar(&timeout, "timeout", 5*time.Minute, "Wait timeout (for --wait)")

	return cmd
}

func newAccountsRefreshStatusCmd(app *App) *cobra.Command {
	var accountIDs []string

	cmd := &cobra.Command{
		Use:   "refresh-status",
		Short: "Check if account refresh is complete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := app.client().IsAccountsRefreshComplete(cmd.Context(), accountIDs)
			if err != nil {
				return err
			}
			app.infof("Refresh complete: %v", done)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&accountIDs, "account-ids", "a", nil, "Account IDs to check")
	return cmd
}
