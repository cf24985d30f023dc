package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmoney-cli/mmoney/pkg/auth"
	"github.com/mmoney-cli/mmoney/pkg/clierr"
	"github.com/mmoney-cli/mmoney/pkg/monarch"
)

// loginURL is where interactive users grab a token when they cannot or do
// not want to authenticate with credentials (e.g. captcha walls).
const loginURL = "https://app.monarchmoney.com/login"

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication and session management",
	}
	cmd.AddCommand(newAuthLoginCmd(app))
	cmd.AddCommand(newAuthLogoutCmd(app))
	cmd.AddCommand(newAuthStatusCmd(app))
	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var (
		email       string
		password    string
		mfaSecret   string
		mfaCode     string
		token       string
		deviceUUID  string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Monarch Money",
		Long: `Login to Monarch Money.

AUTHENTICATION METHODS (in order of preference):

1. EMAIL + PASSWORD + MFA SECRET (longest lasting, fully automated):
   Copy the authenticator secret key shown when enabling MFA; the CLI
   generates TOTP codes from it automatically.
   mmoney auth login -e EMAIL -p PASSWORD --mfa-secret YOUR_SECRET --interactive=false

2. EMAIL + PASSWORD + MFA CODE (manual code entry):
   mmoney auth login -e EMAIL -p PASSWORD --mfa-code 123456

3. EMAIL + PASSWORD + DEVICE UUID (bypasses MFA):
   In the browser console on app.monarchmoney.com run
   copy(localStorage.getItem('monarchDeviceUUID')), then
   mmoney auth login -e EMAIL -p PASSWORD -d YOUR_UUID --interactive=false

4. TOKEN FROM BROWSER (shortest lived):
   Copy the value after 'Token ' from any graphql request's Authorization
   header, then
   mmoney auth login --token YOUR_TOKEN`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := app.newClient()

			// Direct token import needs no service call.
			if token != "" {
				client.SetToken(token)
				return app.persistSession(client, "Token")
			}

			if deviceUUID != "" {
				client.SetDeviceUUID(deviceUUID)
			}

			ctx := cmd.Context()
			switch {
			case mfaCode != "":
				if email == "" || password == "" {
					return missingField(
						"--email and --password required with --mfa-code",
						"Provide both email and password when using MFA code authentication.")
				}
				if err := client.MultiFactorAuthenticate(ctx, email, password, mfaCode); err != nil {
					return err
				}
			case !interactive:
				if email == "" || password == "" {
					return missingField(
						"--email and --password required for non-interactive login",
						"Provide both email and password for non-interactive authentication.")
				}
				if err := client.Login(ctx, email, password, mfaSecret); err != nil {
					return err
				}
			default:
				if err := app.interactiveLogin(ctx, client, email, password, mfaSecret); err != nil {
					return err
				}
			}

			if err := app.persistSession(client, "Session"); err != nil {
				return err
			}
			app.infof("Login successful!")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&email, "email", "e", "", "Email address")
	flags.StringVarP(&password, "password", "p", "", "Password")
	flags.StringVar(&mfaSecret, "mfa-secret", "", "MFA secret key for automatic TOTP")
	flags.StringVar(&mfaCode, "mfa-code", "", "One-time MFA code (6 digits)")
	flags.StringVarP(&token, "token", "t", "", "Auth token from browser (bypasses captcha)")
	flags.StringVarP(&deviceUUID, "device-uuid", "d", "", "Device UUID from browser (bypasses MFA)")
	flags.BoolVarP(&interactive, "interactive", "i", true, "Prompt for missing credentials")

	return cmd
}

// interactiveLogin prompts for whatever the flags did not supply. Leaving
// the email empty switches to token capture via the web app.
func (a *App) interactiveLogin(ctx context.Context, client *monarch.Client, email, password, mfaSecret string) error {
	var err error
	if email == "" {
		email, err = a.prompt("Email (leave blank to paste a token from the browser)", false)
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
	}

	if email == "" {
		auth.OpenBrowserWithFallback(a.browser, loginURL, a.stdout)
		token, err := a.prompt("Token", true)
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
		if token == "" {
			return clierr.Auth(clierr.CodeAuthRequired, "no token provided")
		}
		client.SetToken(token)
		return nil
	}

	if password == "" {
		password, err = a.prompt("Password", true)
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
	}

	err = client.Login(ctx, email, password, mfaSecret)
	if err == nil {
		return nil
	}

	// An MFA challenge during an interactive session is answered inline.
	var ce *clierr.Error
	if errors.As(err, &ce) && ce.Code == clierr.CodeAuthMFARequired {
		code, perr := a.prompt("MFA code", false)
		if perr != nil {
			return fmt.Errorf("prompt failed: %w", perr)
		}
		return client.MultiFactorAuthenticate(ctx, email, password, code)
	}
	return err
}

// persistSession stores the client's credential: keyring first, session
// file as fallback. what names the artifact in the confirmation message.
func (a *App) persistSession(client *monarch.Client, what string) error {
	source, ok := a.resolver.Persist(client.Token())
	switch {
	case ok && source == auth.SourceKeyring:
		a.infof("%s saved to system keychain.", what)
	case ok:
		// Re-save through the client so the device UUID survives too.
		if client.DeviceUUID() != "" {
			_ = client.SaveSession(a.cfg.SessionPath)
		}
		a.infof("%s saved to file (%s).", what, a.cfg.SessionPath)
	default:
		return fmt.Errorf("failed to save the session to the keychain or to %s", a.cfg.SessionPath)
	}
	return nil
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the saved session from keychain and file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.resolver.Clear() {
				app.infof("Session deleted.")
			} else {
				app.infof("No session found.")
			}
			return nil
		},
	}
}

func newAuthStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check authentication status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, source, ok := app.resolver.Resolve(nil)
			switch {
			case ok && source == auth.SourceKeyring:
				app.infof("Authenticated (keychain)")
			case ok:
				app.infof("Authenticated (file: %s)", app.cfg.SessionPath)
			default:
				app.infof("Not authenticated")
			}
			return nil
		},
	}
}
