package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"mixed case Trace", "Trace", LevelTrace},
		{"unknown defaults to info", "verbose", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_Filtering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)

	logger.Debug("hidden")
	logger.Info("shown", "steps", 300)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record should be filtered at info level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "steps=300") {
		t.Errorf("info record missing: %q", out)
	}
}

func TestNewLogger_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)

	logger.Log(context.Background(), LevelTrace, "bounce", "step", 88)

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("expected TRACE label, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not be enabled for any level")
	}
}
