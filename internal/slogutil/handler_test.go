package slogutil

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Info("advisory rendered", "tooling", "unified", "actions", 2)

	line := buf.String()
	if !strings.Contains(line, "[info] advisory rendered") {
		t.Errorf("missing level and message: %q", line)
	}
	if !strings.Contains(line, "| tooling=unified actions=2") {
		t.Errorf("missing attributes: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("line should end with newline")
	}
}

func TestHandlerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn record should pass at warn level")
	}
}

func TestHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).With("run_id", "abc")

	logger.Info("recorded")

	if !strings.Contains(buf.String(), "run_id=abc") {
		t.Errorf("pre-set attribute missing: %q", buf.String())
	}
}

func TestHandlerWithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).WithGroup("git")

	logger.Info("resolved", "rev", "ORIG_HEAD")

	if !strings.Contains(buf.String(), "git.rev=ORIG_HEAD") {
		t.Errorf("group prefix missing: %q", buf.String())
	}
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := LevelFromString(tt.in); got != tt.want {
			t.Errorf("LevelFromString(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	if LevelFromVerbosity(0, true) <= slog.LevelError {
		t.Error("quiet should suppress all standard levels")
	}
	if got := LevelFromVerbosity(0, false); got != slog.LevelWarn {
		t.Errorf("default verbosity = %v, expected warn", got)
	}
	if got := LevelFromVerbosity(2, false); got != slog.LevelDebug {
		t.Errorf("verbosity 2 = %v, expected debug", got)
	}
}

func TestTeeHandler(t *testing.T) {
	var a, b bytes.Buffer
	logger := NewTeeLogger(
		NewHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		NewHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	logger.Info("only first")

	if !strings.Contains(a.String(), "only first") {
		t.Error("first handler should receive info record")
	}
	if b.Len() != 0 {
		t.Error("second handler is error-only and should stay empty")
	}
}
