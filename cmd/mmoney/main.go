// Package main is the mmoney entry point.
package main

import (
	"os"

	"github.com/mmoney-cli/mmoney/internal/cli"
	"github.com/mmoney-cli/mmoney/internal/config"
	"github.com/mmoney-cli/mmoney/pkg/clierr"
)

func main() {
	cfg, err := config.Load(config.DefaultDir())
	if err != nil {
		report(err)
	}

	app := cli.NewApp(cfg, os.Stdout, os.Stderr)
	if err := cli.NewRootCmd(app).Execute(); err != nil {
		report(err)
	}
}

// report writes the error envelope to stderr and exits with the status
// reserved for the error's class.
func report(err error) {
	ce := clierr.From(err)
	clierr.Write(os.Stderr, ce)
	os.Exit(ce.Exit)
}
