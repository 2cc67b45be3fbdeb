// Package logger wraps zap with a small structured-logging surface shared by
// the collaborators around the encoding engine.
package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls log verbosity and output encoding.
type Config struct {
	Level  string // "debug", "info", "warn", or "error"
	Format string // "json" or "console"
}

// Logger is a thin wrapper around zap.Logger.
type Logger struct {
	*zap.Logger
}

// New creates a logger from the given config.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Encoding = "json"
	if cfg.Format == "console" {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	log, err := zapCfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return &Logger{log}, nil
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{zap.NewNop()}
}

// Named returns a child logger with the given name appended.
func (l *Logger) Named(name string) *Logger {
	return &Logger{l.Logger.Named(name)}
}

// Field constructors, re-exported so callers only import this package.

func String(key, val string) zap.Field          { return zap.String(key, val) }
func Int(key string, val int) zap.Field         { return zap.Int(key, val) }
func Int64(key string, val int64) zap.Field     { return zap.Int64(key, val) }
func Float64(key string, val float64) zap.Field { return zap.Float64(key, val) }
func Bool(key string, val bool) zap.Field       { return zap.Bool(key, val) }
func Duration(key string, val time.Duration) zap.Field {
	return zap.Duration(key, val)
}
func Error(err error) zap.Field { return zap.Error(err) }
