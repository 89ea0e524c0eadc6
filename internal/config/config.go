// Package config loads per-tree trackmv configuration.
//
// Configuration lives at .trackmv/config.yaml and is entirely optional;
// every field has a default and a missing file yields the default
// configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the per-tree configuration.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Move   MoveConfig   `yaml:"move"`
}

// OutputConfig holds output-related settings.
type OutputConfig struct {
	// Color controls colored output: "auto", "always", or "never".
	Color string `yaml:"color"`

	// Verbose enables per-rename output without passing --verbose.
	Verbose bool `yaml:"verbose"`
}

// MoveConfig holds defaults for the mv command.
type MoveConfig struct {
	// IgnoreErrors downgrades per-pair failures to warnings by default.
	IgnoreErrors bool `yaml:"ignore_errors"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Color:   "auto",
			Verbose: false,
		},
		Move: MoveConfig{
			IgnoreErrors: false,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[c.Output.Color] {
		return fmt.Errorf("output.color must be 'auto', 'always', or 'never', got %q", c.Output.Color)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Load loads the configuration from the given path, falling back to the
// default configuration if the file does not exist.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFromFile(path)
}
