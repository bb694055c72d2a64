// Package config loads service configuration from a YAML file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration.
type Config struct {
	// ListenAddr is the HTTP listen address for the webhook endpoint.
	ListenAddr string `yaml:"listen_addr"`

	// DatabasePath is the SQLite database file path.
	DatabasePath string `yaml:"database_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is "json" or "console".
	LogFormat string `yaml:"log_format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ListenAddr:   ":8080",
		DatabasePath: "meetscribe.db",
		LogLevel:     "info",
		LogFormat:    "json",
	}
}

// Load reads a YAML config file and fills unset fields with defaults.
// Unknown keys are rejected so typos fail loudly instead of silently
// falling back to defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log_format %q: must be json or console", c.LogFormat)
	}
	return nil
}
