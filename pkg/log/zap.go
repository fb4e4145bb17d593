package log

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapAdapter implements Logger using zap.
type ZapAdapter struct {
	logger *zap.Logger
}

// NewZapAdapter builds a production (JSON, stderr) zap logger at the given
// level. An empty level means info.
func NewZapAdapter(level string) (*ZapAdapter, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapAdapter{logger: l}, nil
}

// NewZapAdapterWithLogger creates an adapter wrapping an existing *zap.Logger.
func NewZapAdapterWithLogger(logger *zap.Logger) *ZapAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapAdapter{logger: logger}
}

func (z *ZapAdapter) Debug(msg string, fields ...Field) { z.logger.Debug(msg, zapFields(fields)...) }
func (z *ZapAdapter) Info(msg string, fields ...Field)  { z.logger.Info(msg, zapFields(fields)...) }
func (z *ZapAdapter) Warn(msg string, fields ...Field)  { z.logger.Warn(msg, zapFields(fields)...) }
func (z *ZapAdapter) Error(msg string, fields ...Field) { z.logger.Error(msg, zapFields(fields)...) }

// Sync flushes buffered entries.
func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

// Logger returns the underlying *zap.Logger.
func (z *ZapAdapter) Logger() *zap.Logger {
	return z.logger
}

func zapFields(fields []Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out = append(out, zap.String(f.Key, v))
		case int:
			out = append(out, zap.Int(f.Key, v))
		case int64:
			out = append(out, zap.Int64(f.Key, v))
		case uint64:
			out = append(out, zap.Uint64(f.Key, v))
		case float64:
			out = append(out, zap.Float64(f.Key, v))
		case bool:
			out = append(out, zap.Bool(f.Key, v))
		case rune:
			out = append(out, zap.String(f.Key, fmt.Sprintf("U+%04X", v)))
		case time.Duration:
			out = append(out, zap.Duration(f.Key, v))
		case error:
			out = append(out, zap.NamedError(f.Key, v))
		default:
			out = append(out, zap.Any(f.Key, v))
		}
	}
	return out
}
