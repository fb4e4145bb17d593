package cliconfig

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/runeguard/internal/domain"
)

// Color modes for text reports.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds CLI configuration for runeguard.
type Config struct {
	Format    string
	LogFormat string
	LogLevel  string
	Color     string

	Workers     int
	StartOffset int
	Retries     int
	MaxBytes    int64

	HTTPTimeout time.Duration
	Debounce    time.Duration

	// StateDir enables verdict persistence when set.
	StateDir string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Format:      "text",
		LogFormat:   "console",
		LogLevel:    "info",
		Color:       ColorAuto,
		Workers:     runtime.NumCPU(),
		Retries:     2,
		MaxBytes:    64 << 20, // 64MB
		HTTPTimeout: 15 * time.Second,
		Debounce:    100 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(c.Format)
	c.LogFormat = strings.ToLower(c.LogFormat)
	c.Color = strings.ToLower(c.Color)

	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: format %q (want text, json or yaml)", domain.ErrInvalidConfig, c.Format)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q (want console or json)", domain.ErrInvalidConfig, c.LogFormat)
	}
	switch c.Color {
	case "":
		c.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color %q (want auto, always or never)", domain.ErrInvalidConfig, c.Color)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.StartOffset < 0 {
		return fmt.Errorf("%w: offset must not be negative", domain.ErrInvalidConfig)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must not be negative", domain.ErrInvalidConfig)
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("%w: max bytes must not be negative", domain.ErrInvalidConfig)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", domain.ErrInvalidConfig)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("%w: debounce must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}
