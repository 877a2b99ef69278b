package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// slogLogger adapts log/slog to the Logger interface.
type slogLogger struct {
	logger *slog.Logger
	level  Level
}

// NewSlogLogger builds a Logger writing JSON or text to stdout.
func NewSlogLogger(cfg Config) Logger {
	return newSlogLogger(os.Stdout, cfg)
}

func newSlogLogger(w io.Writer, cfg Config) Logger {
	opts := &slog.HandlerOptions{
		Level:     slogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &slogLogger{logger: slog.New(handler), level: cfg.Level}
}

func slogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// args flattens fields into slog's alternating key/value form.
func args(fields []Field) []any {
	out := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}

func (l *slogLogger) Debug(msg string, fields ...Field) { l.logger.Debug(msg, args(fields)...) }

func (l *slogLogger) Info(msg string, fields ...Field) { l.logger.Info(msg, args(fields)...) }

func (l *slogLogger) Warn(msg string, fields ...Field) { l.logger.Warn(msg, args(fields)...) }

func (l *slogLogger) Error(msg string, fields ...Field) { l.logger.Error(msg, args(fields)...) }

func (l *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{logger: l.logger.With(args(fields)...), level: l.level}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	fields := extractContextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

func (l *slogLogger) Level() Level {
	return l.level
}
