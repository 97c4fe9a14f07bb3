package recgo

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with recgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithUser adds a user field to the logger.
func (l *Logger) WithUser(key string) *Logger {
	return &Logger{
		Logger: l.Logger.With("user", key),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// LogBuild logs the construction of an engine.
func (l *Logger) LogBuild(ctx context.Context, users, items, ratings, skipped int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"error", err,
		)
		return
	}
	if skipped > 0 {
		l.WarnContext(ctx, "build completed with skipped records",
			"users", users,
			"items", items,
			"ratings", ratings,
			"skipped", skipped,
		)
		return
	}
	l.InfoContext(ctx, "build completed",
		"users", users,
		"items", items,
		"ratings", ratings,
	)
}

// LogRecommend logs a single-user recommendation.
func (l *Logger) LogRecommend(ctx context.Context, user string, suggestions int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "recommend failed",
			"user", user,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "recommend completed",
			"user", user,
			"suggestions", suggestions,
		)
	}
}

// LogProgress logs RecommendAll progress.
func (l *Logger) LogProgress(ctx context.Context, done, total, rows int) {
	l.InfoContext(ctx, "recommending",
		"done", done,
		"total", total,
		"rows", rows,
	)
}

// LogEncode logs the writing of an artifact.
func (l *Logger) LogEncode(ctx context.Context, name string, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "encode completed",
			"name", name,
			"records", records,
		)
	}
}
