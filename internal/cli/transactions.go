package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmoney-cli/mmoney/pkg/gate"
	"github.com/mmoney-cli/mmoney/pkg/monarch"
)

func newTransactionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction queries and management",
	}
	cmd.AddCommand(newTransactionsListCmd(app))
	cmd.AddCommand(newTransactionsGetCmd(app))
	cmd.AddCommand(newTransactionsSummaryCmd(app))
	cmd.AddCommand(newTransactionsSplitsCmd(app))
	cmd.AddCommand(newTransactionsCreateCmd(app))
	cmd.AddCommand(newTransactionsUpdateCmd(app))
	cmd.AddCommand(newTransactionsDeleteCmd(app))
	return cmd
}

func newTransactionsListCmd(app *App) *cobra.Command {
	var filters monarch.TransactionFilters
	var startDate, endDate string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDates(map[string]string{
				"start-date": startDate,
				"end-date":   endDate,
			}); err != nil {
				return err
			}
			fs := cmd.Flags()
			filters.StartDate = startDate
			filters.EndDate = endDate
			filters.HasAttachments = optionalBool(fs, "has-attachments")
			filters.HasNotes = optionalBool(fs, "has-notes")
			filters.IsSplit = optionalBool(fs, "is-split")
			filters.IsRecurring = optionalBool(fs, "is-recurring")
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetTransactions(ctx, filters)
			})
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&filters.Limit, "limit", "l", 100, "Number of transactions")
	flags.IntVar(&filters.Offset, "offset", 0, "Offset for pagination")
	flags.StringVarP(&startDate, "start-date", "s", "", "Start date (YYYY-MM-DD)")
	flags.StringVarP(&endDate, "end-date", "e", "", "End date (YYYY-MM-DD)")
	flags.StringVarP(&filters.Search, "search", "q", "", "Search query")
	flags.StringSliceVarP(&filters.CategoryIDs, "category-id", "c", nil, "Filter by category ID")
	flags.StringSliceVarP(&filters.AccountIDs, "account-id", "a", nil, "Filter by account ID")
	flags.StringSliceVarP(&filters.TagIDs, "tag-id", "t", nil, "Filter by tag ID")
	flags.Bool("has-attachments", false, "Filter by attachment presence")
	flags.Bool("has-notes", false, "Filter by notes presence")
	flags.Bool("is-split", false, "Filter split transactions")
	flags.Bool("is-recurring", false, "Filter recurring transactions")

	return cmd
}

func newTransactionsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get TRANSACTION_ID",
		Short: "Get details for one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetTransactionDetails(ctx, args[0])
			})
		},
	}
}

func newTransactionsSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Aggregate transaction summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetTransactionsSummary(ctx)
			})
		},
	}
}

func newTransactionsSplitsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "splits TRANSACTION_ID",
		Short: "List a transaction's splits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetTransactionSplits(ctx, args[0])
			})
		},
	}
}

func newTransactionsCreateCmd(app *App) *cobra.Command {
	var input monarch.TransactionInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a manual transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			required := map[string]string{
				"date":        input.Date,
				"account-id":  input.AccountID,
				"merchant":    input.MerchantName,
				"category-id": input.CategoryID,
			}
			if err := requireFlags(required); err != nil {
				return err
			}
			if !cmd.Flags().Changed("amount") {
				return missingField("missing required flag(s): --amount",
					"Provide the transaction amount (negative for expense).")
			}
			if err := validateDate("date", input.Date); err != nil {
				return err
			}
			if err := gate.Check(app.allowMutations); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.CreateTransaction(ctx, input)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input.Date, "date", "d", "", "Transaction date (YYYY-MM-DD)")
	flags.StringVarP(&input.AccountID, "account-id", "a", "", "Account ID")
	flags.Float64Var(&input.Amount, "amount", 0, "Amount (negative for expense)")
	flags.StringVarP(&input.MerchantName, "merchant", "m", "", "Merchant name")
	flags.StringVarP(&input.CategoryID, "category-id", "c", "", "Category ID")
	flags.StringVarP(&input.Notes, "notes", "n", "", "Notes")
	flags.BoolVar(&input.UpdateBalance, "update-balance", false, "Update account balance")

	return cmd
}

func newTransactionsUpdateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update TRANSACTION_ID",
		Short: "Update a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			update := monarch.TransactionUpdate{
				CategoryID:      optionalString(fs, "category-id"),
				MerchantName:    optionalString(fs, "merchant"),
				Amount:          optionalFloat(fs, "amount"),
				Date:            optionalString(fs, "date"),
				Notes:           optionalString(fs, "notes"),
				HideFromReports: optionalBool(fs, "hide-from-reports"),
				NeedsReview:     optionalBool(fs, "needs-review"),
			}
			if update.Date != nil {
				if err := validateDate("date", *update.Date); err != nil {
					return err
				}
			}
			if err := gate.Check(app.allowMutations); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.UpdateTransaction(ctx, args[0], update)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringP("category-id", "c", "", "Category ID")
	flags.StringP("merchant", "m", "", "Merchant name")
	flags.Float64("amount", 0, "Amount")
	flags.StringP("date", "d", "", "Date (YYYY-MM-DD)")
	flags.StringP("notes", "n", "", "Notes")
	flags.Bool("hide-from-reports", false, "Hide from reports")
	flags.Bool("needs-review", false, "Needs review flag")

	return cmd
}

func newTransactionsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete TRANSACTION_ID",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gate.Check(app.allowMutations); err != nil {
				return err
			}
			if err := app.confirmOrAbort(cmd, "Are you sure you want to delete this transaction?"); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.DeleteTransaction(ctx, args[0])
			})
		},
	}
	addYesFlag(cmd)
	return cmd
}
