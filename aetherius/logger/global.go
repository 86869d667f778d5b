package logger

import (
	"context"
	"log/slog"
	"time"
)

func logTyped(level slog.Level, typ, msg string, attrs []any) {
	slog.Log(context.Background(), level, msg, append([]any{slog.String("type", typ)}, attrs...)...)
}

// LogQuery logs a statement at debug level, or at error level with the
// statement attached when it failed.
func LogQuery(query string, took time.Duration, err error) {
	attrs := []any{slog.String("query", query), slog.Duration("took", took)}
	if err != nil {
		logTyped(slog.LevelError, "db", "Query failed", append(attrs, slog.Any("error", err)))
		return
	}
	logTyped(slog.LevelDebug, "db", "Query executed", attrs)
}

func LogSystem(msg string, attrs ...any) {
	logTyped(slog.LevelInfo, "sys", msg, attrs)
}

// LogEvent logs gateway-driven activity such as drops and quest completions.
func LogEvent(msg string, attrs ...any) {
	logTyped(slog.LevelInfo, "event", msg, attrs)
}

func LogError(msg string, err error, attrs ...any) {
	logTyped(slog.LevelError, "error", msg, append([]any{slog.Any("error", err)}, attrs...))
}
