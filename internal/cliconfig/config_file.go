package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Format      string `toml:"format"`
	LogFormat   string `toml:"log_format"`
	LogLevel    string `toml:"log_level"`
	Color       string `toml:"color"`
	Workers     int    `toml:"workers"`
	StartOffset int    `toml:"offset"`
	Retries     int    `toml:"retries"`
	MaxBytes    int64  `toml:"max_bytes"`
	HTTPTimeout string `toml:"http_timeout"`
	Debounce    string `toml:"debounce"`
	StateDir    string `toml:"state_dir"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.runeguard/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".runeguard", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("format", fc.Format, &cfg.Format)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("color", fc.Color, &cfg.Color)
	s.setString("state-dir", fc.StateDir, &cfg.StateDir)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setInt("workers", fc.Workers, &cfg.Workers)
	s.setInt("offset", fc.StartOffset, &cfg.StartOffset)
	s.setInt("retries", fc.Retries, &cfg.Retries)
	s.setInt64("max-bytes", fc.MaxBytes, &cfg.MaxBytes)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
