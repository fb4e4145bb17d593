package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	tests := []struct {
		name     string
		fc       FileConfig
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all file values",
			fc: FileConfig{
				Format:      "yaml",
				LogFormat:   "json",
				LogLevel:    "debug",
				Color:       "never",
				Workers:     8,
				StartOffset: 3,
				Retries:     5,
				MaxBytes:    1024,
				HTTPTimeout: "30s",
				Debounce:    "250ms",
				StateDir:    "/state",
			},
			changed: map[string]bool{},
			expected: Config{
				Format:      "yaml",
				LogFormat:   "json",
				LogLevel:    "debug",
				Color:       "never",
				Workers:     8,
				StartOffset: 3,
				Retries:     5,
				MaxBytes:    1024,
				HTTPTimeout: 30 * time.Second,
				Debounce:    250 * time.Millisecond,
				StateDir:    "/state",
			},
		},
		{
			name:    "flags take precedence over file",
			fc:      FileConfig{Format: "yaml", Workers: 8, HTTPTimeout: "30s"},
			changed: map[string]bool{"format": true, "workers": true, "timeout": true},
			initial: Config{Format: "json", Workers: 2, HTTPTimeout: time.Second},
			expected: Config{
				Format:      "json",
				Workers:     2,
				HTTPTimeout: time.Second,
			},
		},
		{
			name:     "empty file values keep defaults",
			fc:       FileConfig{},
			changed:  map[string]bool{},
			initial:  Config{Format: "text", Workers: 4},
			expected: Config{Format: "text", Workers: 4},
		},
		{
			name:    "invalid duration",
			fc:      FileConfig{Debounce: "soon"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fc, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.toml")

	tomlContent := `
format = "json"
workers = 4
max_bytes = 2048
debounce = "1s"
state_dir = "/var/lib/runeguard"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.Format != "json" {
		t.Errorf("Format = %v, want json", fc.Format)
	}
	if fc.Workers != 4 {
		t.Errorf("Workers = %v, want 4", fc.Workers)
	}
	if fc.MaxBytes != 2048 {
		t.Errorf("MaxBytes = %v, want 2048", fc.MaxBytes)
	}
	if fc.Debounce != "1s" {
		t.Errorf("Debounce = %v, want 1s", fc.Debounce)
	}
	if fc.StateDir != "/var/lib/runeguard" {
		t.Errorf("StateDir = %v, want /var/lib/runeguard", fc.StateDir)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
format = "text"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".runeguard") {
		t.Errorf("DefaultConfigPath() = %v, should contain .runeguard", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
