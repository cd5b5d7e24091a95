// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/roster-resolve/internal/domain/matching"
)

const (
	// DefaultConfigDir is the directory name for roster configuration.
	DefaultConfigDir = ".roster"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultEventsFile is the default event registry file name.
	DefaultEventsFile = "events.yaml"
	// DefaultDatabaseFile is the SQLite file used when no path is configured.
	DefaultDatabaseFile = "roster.db"
	// DefaultLockFile guards runs that write to the database.
	DefaultLockFile = "roster.lock"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds static configuration (read-only after init).
type Config struct {
	Matching MatchingConfig `yaml:"matching,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Log      LogConfig      `yaml:"log,omitempty"`
}

// MatchingConfig tunes the resolution engine.
// A table given here replaces the built-in one rather than extending it.
type MatchingConfig struct {
	Threshold  int               `yaml:"threshold"`
	Workers    int               `yaml:"workers,omitempty"`
	Diacritics map[string]string `yaml:"diacritics,omitempty"`
	Initials   map[string]string `yaml:"initials,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite relational database.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. Relative paths are
	// resolved against the project directory.
	Path string `yaml:"path,omitempty"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // trace, debug, info, warn, error
	Format string `yaml:"format,omitempty"` // auto, console, json
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			Threshold: matching.DefaultThreshold,
			Workers:   1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the .roster directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'roster init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("ROSTER_THRESHOLD"); v != "" {
		threshold, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ROSTER_THRESHOLD: %w", err)
		}
		c.Matching.Threshold = threshold
	}
	if v := os.Getenv("ROSTER_DB"); v != "" {
		c.SQLite.Path = v
	}
	if v := os.Getenv("ROSTER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks the configuration for values the engine would reject.
func (c *Config) Validate() error {
	var errs []error

	if err := matching.ValidateThreshold(c.Matching.Threshold); err != nil {
		errs = append(errs, fmt.Errorf("matching.threshold: %w", err))
	}
	if c.Matching.Workers < 0 {
		errs = append(errs, fmt.Errorf("matching.workers must not be negative, got %d", c.Matching.Workers))
	}
	if _, err := matching.NewResolver(c.MatchingOptions()); err != nil {
		errs = append(errs, fmt.Errorf("matching tables: %w", err))
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not a known level", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "auto", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be auto, console or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// MatchingOptions returns engine options, falling back to the built-in
// tables for any table the config leaves out.
func (c *Config) MatchingOptions() matching.Options {
	opts := matching.DefaultOptions()
	if c.Matching.Diacritics != nil {
		opts.Diacritics = c.Matching.Diacritics
	}
	if c.Matching.Initials != nil {
		opts.Initials = c.Matching.Initials
	}
	if c.Matching.Workers > 0 {
		opts.Workers = c.Matching.Workers
	}
	return opts
}

// SQLitePath returns the database path for a project.
func (c *Config) SQLitePath(basePath string) string {
	path := c.SQLite.Path
	if path == "" {
		return filepath.Join(basePath, DefaultConfigDir, DefaultDatabaseFile)
	}
	if path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(basePath, path)
}

// ConfigDir returns the path to the .roster config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// EventsFilePath returns the path to the event registry.
func EventsFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultEventsFile)
}

// LockFilePath returns the path to the run lock file.
func LockFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultLockFile)
}

// SanitizeEventName converts an event name to its registry key.
func SanitizeEventName(name string) string {
	// Convert to lowercase
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	// Remove any characters that aren't alphanumeric or underscore
	name = reNonAlphanumeric.ReplaceAllString(name, "")

	// Remove consecutive underscores
	name = reMultipleUnderscores.ReplaceAllString(name, "_")

	// Trim leading/trailing underscores
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}
