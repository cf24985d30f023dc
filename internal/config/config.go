// Package config materializes the process configuration: defaults, an
// optional YAML config file, and MMONEY_* environment overrides, merged
// once at startup into an immutable struct that is passed into every
// component.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mmoney-cli/mmoney/pkg/monarch"
	"github.com/mmoney-cli/mmoney/pkg/output"
)

// SessionFileName is the single session artifact kept in the config dir.
const SessionFileName = "session.json"

const configFileName = "config.yaml"

// Config is the resolved process configuration. It is constructed once and
// never mutated afterward.
type Config struct {
	// BaseURL is the API endpoint.
	BaseURL string
	// Timeout bounds each service call.
	Timeout time.Duration
	// Format is the default output format, overridable per invocation.
	Format string
	// AllowMutations unlocks state-changing commands for this process.
	AllowMutations bool
	// Dir is the config directory holding the config file and session.
	Dir string
	// SessionPath is the session artifact inside Dir.
	SessionPath string
}

// DefaultDir returns the XDG-compliant config directory.
func DefaultDir() string {
	return filepath.Join(xdg.ConfigHome, "mmoney")
}

// Load reads configuration from dir, applying environment overrides. A
// missing config file is not an error; defaults apply.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("MMONEY")
	v.AutomaticEnv()

	v.SetDefault("base_url", monarch.DefaultBaseURL)
	v.SetDefault("timeout", "30s")
	v.SetDefault("format", output.DefaultFormat)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid timeout in config: %w", err)
	}

	return &Config{
		BaseURL:     v.GetString("base_url"),
		Timeout:     timeout,
		Format:      v.GetString("format"),
		Dir:         dir,
		SessionPath: filepath.Join(dir, SessionFileName),
	}, nil
}

// fileConfig is the on-disk shape of the config file.
type fileConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
	Format  string `yaml:"format"`
}

// WriteDefault writes a config file with the default settings into dir and
// returns its path. An existing file is left untouched.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(fileConfig{
		BaseURL: monarch.DefaultBaseURL,
		Timeout: "30s",
		Format:  output.DefaultFormat,
	})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
