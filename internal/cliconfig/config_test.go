package cliconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/bft-labs/runeguard/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Format != "text" {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("Color = %v, want %v", cfg.Color, ColorAuto)
	}
	if cfg.Workers <= 0 {
		t.Errorf("Workers = %v, want positive", cfg.Workers)
	}
	if cfg.MaxBytes != 64<<20 {
		t.Errorf("MaxBytes = %v, want %v", cfg.MaxBytes, 64<<20)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "json format", mutate: func(c *Config) { c.Format = "json" }},
		{name: "format is case insensitive", mutate: func(c *Config) { c.Format = "YAML" }},
		{name: "unknown format", mutate: func(c *Config) { c.Format = "xml" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.LogFormat = "logfmt" }, wantErr: true},
		{name: "unknown color", mutate: func(c *Config) { c.Color = "sometimes" }, wantErr: true},
		{name: "negative offset", mutate: func(c *Config) { c.StartOffset = -1 }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.Retries = -1 }, wantErr: true},
		{name: "negative max bytes", mutate: func(c *Config) { c.MaxBytes = -1 }, wantErr: true},
		{name: "zero max bytes means unlimited", mutate: func(c *Config) { c.MaxBytes = 0 }},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }, wantErr: true},
		{name: "zero debounce", mutate: func(c *Config) { c.Debounce = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfig_Validate_Derivations(t *testing.T) {
	c := Config{
		Format:      "JSON",
		LogFormat:   "Console",
		HTTPTimeout: time.Second,
		Debounce:    time.Millisecond,
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if c.Format != "json" {
		t.Errorf("Format = %v, want json", c.Format)
	}
	if c.LogFormat != "console" {
		t.Errorf("LogFormat = %v, want console", c.LogFormat)
	}
	if c.Color != ColorAuto {
		t.Errorf("Color = %v, want %v", c.Color, ColorAuto)
	}
	if c.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", c.LogLevel)
	}
	if c.Workers != 1 {
		t.Errorf("Workers = %v, want 1", c.Workers)
	}
}
