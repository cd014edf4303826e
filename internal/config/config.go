// Package config provides the enumcheck configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dball/enumcheck/internal/index"
	. "github.com/dball/enumcheck/internal/types"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config represents the complete enumcheck configuration
type Config struct {
	// DefaultLocale is the BCP 47 locale that plain values are converted to
	// and from, unless the project document names its own.
	DefaultLocale string `yaml:"default_locale"`
	// BTreeDegree is the degree of the uniqueness indexes.
	BTreeDegree int `yaml:"btree_degree"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
	// FailOnWarning makes warnings fail validation like errors.
	FailOnWarning bool `yaml:"fail_on_warning"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DefaultLocale: "en",
		BTreeDegree:   index.DefaultDegree,
		LogLevel:      "warn",
		FailOnWarning: false,
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.Locale(); err != nil {
		return fmt.Errorf("default_locale is invalid: %w", err)
	}
	if c.BTreeDegree < 2 {
		return fmt.Errorf("btree_degree must be at least 2")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Locale parses the default locale.
func (c *Config) Locale() (language.Tag, error) {
	return ParseLocale(c.DefaultLocale)
}

// Level parses the log level.
func (c *Config) Level() (level slog.Level, err error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		err = fmt.Errorf("log_level must be one of debug, info, warn, error: %q", c.LogLevel)
	}
	return
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.DefaultLocale != "" {
		c.DefaultLocale = other.DefaultLocale
	}
	if other.BTreeDegree != 0 {
		c.BTreeDegree = other.BTreeDegree
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.FailOnWarning {
		c.FailOnWarning = true
	}
}
