package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmoney-cli/mmoney/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration file management",
	}
	cmd.AddCommand(newConfigInitCmd(app))
	cmd.AddCommand(newConfigPathCmd(app))
	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(app.cfg.Dir)
			if err != nil {
				// An existing file is reported, not clobbered.
				if path != "" {
					app.infof("Config file already exists: %s", path)
					return nil
				}
				return err
			}
			app.infof("Wrote %s", path)
			return nil
		},
	}
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.infof("%s", app.cfg.Dir)
			return nil
		},
	}
}
