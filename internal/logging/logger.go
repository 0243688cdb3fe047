// Package logging wraps log/slog with run identifiers carried in contexts.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable read by LevelFromEnv.
const EnvLevel = "ORBITSIM_LOG_LEVEL"

type Logger struct {
	*slog.Logger
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{slog.New(handler)}
}

// LogWithContext adds the run id of ctx, if any, to the entry.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if id := RunID(ctx); id != "" {
		args = append(args, "run_id", id)
	}
	l.Log(ctx, level, msg, args...)
}

func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs msg at error level with err attached under "error".
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type runIDKey struct{}

func WithRun(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run id stored by WithRun, or "".
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

// LevelFromEnv reads ORBITSIM_LOG_LEVEL (DEBUG, INFO, WARN, ERROR). Anything
// else means INFO.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(EnvLevel))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
