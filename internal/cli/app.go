// Package cli wires the command tree. Commands are thin glue: they resolve
// credentials, enforce the mutation gate, invoke one service operation, and
// pipe the raw result through the output formatter.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/mmoney-cli/mmoney/internal/config"
	"github.com/mmoney-cli/mmoney/pkg/auth"
	"github.com/mmoney-cli/mmoney/pkg/auth/storage"
	"github.com/mmoney-cli/mmoney/pkg/monarch"
	"github.com/mmoney-cli/mmoney/pkg/output"
)

// App holds the process-wide collaborators shared by every command. The
// effective option values (format, mutation unlock) are fixed once during
// root-command setup and read-only afterward.
type App struct {
	cfg      *config.Config
	stdout   io.Writer
	stderr   io.Writer
	resolver *auth.Resolver
	session  *monarch.SessionStore
	browser  auth.BrowserOpener

	// confirm and prompt are swapped out in tests.
	confirm func(message string) (bool, error)
	prompt  func(label string, masked bool) (string, error)

	allowMutations bool
	format         string
}

// NewApp creates an App with the production collaborators.
func NewApp(cfg *config.Config, stdout, stderr io.Writer) *App {
	session := &monarch.SessionStore{Path: cfg.SessionPath}
	return &App{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		resolver: auth.NewResolver(
			storage.NewKeyringStorage("", ""),
			session,
		),
		session: session,
		browser: &auth.SystemBrowserOpener{},
		confirm: ptermConfirm,
		prompt:  ptermPrompt,
		format:  cfg.Format,
	}
}

// newClient builds an unauthenticated client from the configuration.
func (a *App) newClient() *monarch.Client {
	return monarch.NewClient(
		monarch.WithBaseURL(a.cfg.BaseURL),
		monarch.WithTimeout(a.cfg.Timeout),
	)
}

// client builds a client with the stored credential attached. The resolver
// performs at most one backend read per tier; a session-origin credential
// reuses the session already loaded during resolution rather than reading
// the file again. Resolution failures degrade to an unauthenticated client;
// the service rejects the call and that rejection is what the user sees.
func (a *App) client() *monarch.Client {
	c := a.newClient()
	token, source, ok := a.resolver.Resolve(c.Headers())
	if !ok {
		return c
	}
	c.SetToken(token)
	if source == auth.SourceSession && a.session != nil {
		if uuid := a.session.DeviceUUID(); uuid != "" {
			c.SetDeviceUUID(uuid)
		}
	}
	return c
}

// render writes the response to stdout in the selected format.
func (a *App) render(response any) error {
	f, err := output.New(a.format)
	if err != nil {
		return err
	}
	return f.Format(a.stdout, response)
}

// call runs one service operation against an authenticated client and
// renders the raw result.
func (a *App) call(ctx context.Context, fn func(ctx context.Context, c *monarch.Client) (any, error)) error {
	result, err := fn(ctx, a.client())
	if err != nil {
		return err
	}
	return a.render(result)
}

// infof writes a human-readable message to stdout. Structured output goes
// through render; these lines are for confirmations and status.
func (a *App) infof(format string, args ...any) {
	fmt.Fprintf(a.stdout, format+"\n", args...)
}

func ptermConfirm(message string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultText(message).
		WithDefaultValue(false).
		Show()
}

func ptermPrompt(label string, masked bool) (string, error) {
	input := pterm.DefaultInteractiveTextInput
	if masked {
		input = *input.WithMask("*")
	}
	return input.Show(label)
}
