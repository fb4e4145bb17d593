// Package log provides the logging abstraction used by runeguard components.
//
// The decoder in pkg/utf8dec never logs. Scanning, watching and the CLI log
// through the Logger interface so that callers can plug in their own
// backend. Adapters are provided for zerolog (human-readable console
// output), zap (JSON output for log pipelines) and a no-op logger for tests.
//
// # Usage
//
//	logger := log.NewZerologAdapter(os.Stderr, "info")
//	logger.Info("scan finished", log.Int("sources", 3))
//
// Or, for structured JSON:
//
//	logger, err := log.NewZapAdapter("debug")
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package log
