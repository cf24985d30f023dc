package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mmoney-cli/mmoney/pkg/clierr"
	"github.com/mmoney-cli/mmoney/pkg/output"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCmd builds the mmoney command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mmoney",
		Short: "Access your Monarch Money financial data from the command line",
		Long: `mmoney - Access your Monarch Money financial data from the command line.

By default, runs in READ-ONLY mode for safety (ideal for AI agents).
Use --allow-mutations to enable commands that modify data.

OUTPUT FORMATS:
  text   key=value pairs (default, simple extraction, grep/awk)
  json   pretty-printed JSON (nested data)
  jsonl  one JSON object per line (streaming, line processing)
  csv    comma-separated values (tabular data, spreadsheets)`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The two global options are fixed here, once per process.
			if _, err := output.New(app.format); err != nil {
				return clierr.Validation(clierr.CodeValidationInvalidValue, err.Error())
			}
			return nil
		},
	}

	// Unknown flags and unparsable values are user input errors, not
	// internal failures.
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierr.Validation(clierr.CodeValidationInvalidValue, err.Error())
	})

	flags := cmd.PersistentFlags()
	flags.BoolVar(&app.allowMutations, "allow-mutations", false,
		"Enable commands that modify data (create, update, delete). Default: read-only.")
	flags.StringVarP(&app.format, "format", "f", app.format,
		"Output format: "+strings.Join(output.Names(), ", "))

	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newAccountsCmd(app))
	cmd.AddCommand(newHoldingsCmd(app))
	cmd.AddCommand(newTransactionsCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newBudgetsCmd(app))
	cmd.AddCommand(newCashflowCmd(app))
	cmd.AddCommand(newRecurringCmd(app))
	cmd.AddCommand(newInstitutionsCmd(app))
	cmd.AddCommand(newSubscriptionCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// optionalBool returns the flag value when it was set, nil otherwise.
// Several update operations distinguish "leave unchanged" from false.
func optionalBool(fs *pflag.FlagSet, name string) *bool {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetBool(name)
	return &v
}

// optionalString returns the flag value when it was set, nil otherwise.
func optionalString(fs *pflag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetString(name)
	return &v
}

// optionalFloat returns the flag value when it was set, nil otherwise.
func optionalFloat(fs *pflag.FlagSet, name string) *float64 {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetFloat64(name)
	return &v
}
