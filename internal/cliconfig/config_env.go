package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (RUNEGUARD_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("format", os.Getenv("RUNEGUARD_FORMAT"), &cfg.Format)
	s.setString("log-format", os.Getenv("RUNEGUARD_LOG_FORMAT"), &cfg.LogFormat)
	s.setString("log-level", os.Getenv("RUNEGUARD_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("color", os.Getenv("RUNEGUARD_COLOR"), &cfg.Color)
	s.setString("state-dir", os.Getenv("RUNEGUARD_STATE_DIR"), &cfg.StateDir)

	if err := s.setDuration("timeout", os.Getenv("RUNEGUARD_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("RUNEGUARD_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	if err := s.setIntFromString("workers", os.Getenv("RUNEGUARD_WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setIntFromString("offset", os.Getenv("RUNEGUARD_OFFSET"), &cfg.StartOffset); err != nil {
		return err
	}
	if err := s.setIntFromString("retries", os.Getenv("RUNEGUARD_RETRIES"), &cfg.Retries); err != nil {
		return err
	}
	if err := s.setInt64FromString("max-bytes", os.Getenv("RUNEGUARD_MAX_BYTES"), &cfg.MaxBytes); err != nil {
		return err
	}

	return nil
}
