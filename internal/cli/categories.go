package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmoney-cli/mmoney/pkg/gate"
	"github.com/mmoney-cli/mmoney/pkg/monarch"
)

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Transaction category management",
	}
	cmd.AddCommand(newCategoriesListCmd(app))
	cmd.AddCommand(newCategoriesGroupsCmd(app))
	cmd.AddCommand(newCategoriesCreateCmd(app))
	cmd.AddCommand(newCategoriesDeleteCmd(app))
	return cmd
}

func newCategoriesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List transaction categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetTransactionCategories(ctx)
			})
		},
	}
}

func newCategoriesGroupsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List category groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetTransactionCategoryGroups(ctx)
			})
		},
	}
}

func newCategoriesCreateCmd(app *App) *cobra.Command {
	var input monarch.CategoryInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(map[string]string{
				"group-id": input.GroupID, "name": input.Name,
			}); err != nil {
				return err
			}
			if err := gate.Check(app.allowMutations); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.CreateTransactionCategory(ctx, input)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&input.GroupID, "group-id", "g", "", "Category group ID")
	flags.StringVarP(&input.Name, "name", "n", "", "Category name")
	flags.StringVar(&input.Icon, "icon", "❓", "Category icon")
	flags.BoolVar(&input.RolloverEnabled, "rollover", false, "Enable rollover")

	return cmd
}

func newCategoriesDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete CATEGORY_ID",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gate.Check(app.allowMutations); err != nil {
				return err
			}
			if err := app.confirmOrAbort(cmd, "Are you sure you want to delete this category?"); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.DeleteTransactionCategory(ctx, args[0])
			})
		},
	}
	addYesFlag(cmd)
	return cmd
}
