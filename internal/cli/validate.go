package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmoney-cli/mmoney/pkg/clierr"
)

// validateDate checks that a date flag, when set, is YYYY-MM-DD. All input
// validation runs before any service call is attempted.
func validateDate(flag, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return clierr.Validation(clierr.CodeValidationInvalidDate,
			fmt.Sprintf("--%s must be a date in YYYY-MM-DD form, got %q", flag, value))
	}
	return nil
}

// validateDates validates several date flags at once.
func validateDates(pairs map[string]string) error {
	// Deterministic order for error messages.
	for _, flag := range []string{"start-date", "end-date", "date"} {
		if value, ok := pairs[flag]; ok {
			if err := validateDate(flag, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// requireFlags checks that every named flag carries a non-empty value.
// Missing ones are reported together so the user fixes the command in one
// pass.
func requireFlags(values map[string]string) error {
	var missing []string
	for name, value := range values {
		if value == "" {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return missingField(
		fmt.Sprintf("missing required flag(s): %s", strings.Join(missing, ", ")),
		"Provide a value for each required flag.")
}

// missingField builds the validation error for a required flag combination.
func missingField(message, details string) error {
	return clierr.Validation(clierr.CodeValidationMissingField, message).WithDetails(details)
}

// confirmOrAbort asks for interactive confirmation of a destructive
// operation unless the command's --yes flag bypasses it. A declined prompt
// aborts the command.
func (a *App) confirmOrAbort(cmd *cobra.Command, message string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return nil
	}
	confirmed, err := a.confirm(message)
	if err != nil {
		return fmt.Errorf("confirmation prompt failed: %w", err)
	}
	if !confirmed {
		return clierr.New(clierr.CodeUnknownError, "aborted by user", clierr.ExitGeneralError)
	}
	return nil
}

// addYesFlag registers the confirmation bypass flag on a destructive command.
func addYesFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
