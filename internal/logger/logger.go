// Package logger is a structured logging facade over log/slog, so that
// handlers and services log through one interface and tests can swap the
// backend.
package logger

import (
	"context"
	"time"
)

// Level is the log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "info"
}

// ParseLevel maps a config string to a Level, defaulting to info on
// anything unrecognized.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Field is one structured key-value attribute on a log entry.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Err is the conventional field for attaching an error to a log entry.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Logger is implemented by the slog backend.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a Logger that attaches fields to every entry.
	With(fields ...Field) Logger
	// WithContext returns a Logger carrying the context's request_id
	// and user_id as fields.
	WithContext(ctx context.Context) Logger

	Level() Level
}

// Config selects the backend's level and output format.
type Config struct {
	Level     Level
	Format    string // "json" or "text"
	AddSource bool   // include file:line on each entry
}

func DefaultConfig() Config {
	return Config{Level: LevelInfo, Format: "json"}
}

var defaultLogger Logger

// SetDefault installs the process-wide logger. Called once at startup.
func SetDefault(l Logger) {
	defaultLogger = l
}

// Default returns the process-wide logger, lazily built from
// DefaultConfig when SetDefault was never called.
func Default() Logger {
	if defaultLogger == nil {
		defaultLogger = NewSlogLogger(DefaultConfig())
	}
	return defaultLogger
}

// Package-level shorthands over the default logger.

func Debug(msg string, fields ...Field) { Default().Debug(msg, fields...) }

func Info(msg string, fields ...Field) { Default().Info(msg, fields...) }

func Warn(msg string, fields ...Field) { Default().Warn(msg, fields...) }

func Error(msg string, fields ...Field) { Default().Error(msg, fields...) }

func With(fields ...Field) Logger { return Default().With(fields...) }

func WithContext(ctx context.Context) Logger {
	return Default().WithContext(ctx)
}
