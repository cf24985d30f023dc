// Package gate implements the read-only safety gate wrapping every
// state-changing command.
//
// The CLI runs read-only by default so that automated agents cannot modify
// financial data by accident. Commands classified as mutations (create,
// update, delete, set) call Check before invoking the service; unless the
// process was started with the unlock flag the call is denied with a stable
// error code and a reserved exit status.
package gate

import (
	"github.com/mmoney-cli/mmoney/pkg/clierr"
)

// UnlockFlag is the global flag that enables mutation commands.
const UnlockFlag = "--allow-mutations"

// Check denies the operation unless mutations were explicitly unlocked for
// this process. The flag is fixed once at command-line parsing and never
// changes afterward; Check keeps no per-call state.
func Check(allowMutations bool) error {
	if allowMutations {
		return nil
	}
	return clierr.New(
		clierr.CodeMutationBlocked,
		"This command modifies data. Use "+UnlockFlag+" to enable.",
		clierr.ExitMutationBlocked,
	).WithDetails("Example: mmoney " + UnlockFlag + " accounts create ...")
}
