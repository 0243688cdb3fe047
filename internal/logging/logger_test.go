package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerRunID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	ctx := WithRun(context.Background(), "symmetric_20260101T000000.000000")
	log.Info(ctx, "run started", "steps", 2000)

	out := buf.String()
	for _, want := range []string{"msg=\"run started\"", "steps=2000", "run_id=symmetric_20260101T000000.000000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLoggerWithoutRunID(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).Info(context.Background(), "hello")

	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("unexpected run_id in %q", buf.String())
	}
}

func TestLoggerError(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).Error(context.Background(), "run failed", errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "error=boom") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)
	log.Debug(context.Background(), "debug")
	log.Info(context.Background(), "info")
	if buf.Len() != 0 {
		t.Errorf("expected nothing below WARN, got %q", buf.String())
	}
	log.Warn(context.Background(), "warn")
	if !strings.Contains(buf.String(), "msg=warn") {
		t.Errorf("expected warn entry, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "DEBUG")
	if got := LevelFromEnv(); got != slog.LevelDebug {
		t.Errorf("got %v, want DEBUG", got)
	}
}
