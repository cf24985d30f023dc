package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmoney-cli/mmoney/pkg/gate"
	"github.com/mmoney-cli/mmoney/pkg/monarch"
)

func newTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Transaction tag management",
	}
	cmd.AddCommand(newTagsListCmd(app))
	cmd.AddCommand(newTagsCreateCmd(app))
	cmd.AddCommand(newTagsSetCmd(app))
	return cmd
}

func newTagsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List transaction tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.GetTransactionTags(ctx)
			})
		},
	}
}

func newTagsCreateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlags(map[string]string{"name": name}); err != nil {
				return err
			}
			if err := gate.Check(app.allowMutations); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.CreateTransactionTag(ctx, name, color)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&name, "name", "n", "", "Tag name")
	flags.StringVarP(&color, "color", "c", "blue", "Tag color")

	return cmd
}

func newTagsSetCmd(app *App) *cobra.Command {
	var tagIDs []string

	cmd := &cobra.Command{
		Use:   "set TRANSACTION_ID",
		Short: "Replace the tags on a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(tagIDs) == 0 {
				return missingField("missing required flag(s): --tag-id",
					"Provide at least one tag ID to set.")
			}
			if err := gate.Check(app.allowMutations); err != nil {
				return err
			}
			return app.call(cmd.Context(), func(ctx context.Context, c *monarch.Client) (any, error) {
				return c.SetTransactionTags(ctx, args[0], tagIDs)
			})
		},
	}
	cmd.Flags().StringSliceVarP(&tagIDs, "tag-id", "t", nil, "Tag IDs to set")
	return cmd
}
