// Package config loads mkbtrfs CLI configuration from YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigDir is the directory (relative to the working directory)
// searched for config.yaml when no explicit path is given.
const DefaultConfigDir = ".mkbtrfs"

// DefaultOptions holds option defaults applied to every format run before
// command-line flags. Empty fields set nothing.
type DefaultOptions struct {
	// Label is the default filesystem label.
	Label string `yaml:"label"`

	// Checksum is the default checksum algorithm keyword (crc32c, xxhash,
	// sha256, blake2).
	Checksum string `yaml:"checksum"`

	// Data is the default data block group profile keyword.
	Data string `yaml:"data"`

	// Metadata is the default metadata block group profile keyword.
	Metadata string `yaml:"metadata"`

	// Features are default mkfs-time features.
	Features []string `yaml:"features"`

	// RuntimeFeatures are default runtime features.
	RuntimeFeatures []string `yaml:"runtime_features"`
}

// HistoryConfig controls the invocation journal.
type HistoryConfig struct {
	// Enabled records every format run in the journal.
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the journal database.
	DBPath string `yaml:"db_path"`
}

// Config represents mkbtrfs configuration options.
type Config struct {
	// Binary overrides the mkfs.btrfs executable to invoke.
	// Empty resolves mkfs.btrfs via PATH.
	Binary string `yaml:"binary"`

	// LogLevel sets console verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Lock takes an advisory per-target lock before formatting, so two
	// mkbtrfs processes do not format the same target concurrently.
	Lock bool `yaml:"lock"`

	// Defaults are option defaults applied before flags.
	Defaults DefaultOptions `yaml:"defaults"`

	// History controls the invocation journal.
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Lock:     true,
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(DefaultConfigDir, "history.db"),
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from <dir>/.mkbtrfs/config.yaml,
// falling back to defaults when the file is absent.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DefaultConfigDir, "config.yaml"))
}
