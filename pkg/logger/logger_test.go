package logger

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "info", expected: slog.LevelInfo},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "warn", expected: slog.LevelWarn},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "", expected: slog.LevelInfo},
		{input: "loud", expected: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, level, tt.expected)
			}
		})
	}
}

func TestTextHandler_SimpleFormat(t *testing.T) {
	var buf strings.Builder
	handler := &textHandler{writer: &buf, level: slog.LevelInfo}
	log := slog.New(handler)

	log.Info("manifest fetched", "agent", "http://a.example/", "count", 2)

	got := buf.String()
	if !strings.HasPrefix(got, "INFO manifest fetched") {
		t.Errorf("Unexpected output: %q", got)
	}
	if !strings.Contains(got, "agent=http://a.example/") || !strings.Contains(got, "count=2") {
		t.Errorf("Attributes missing from output: %q", got)
	}
}

func TestTextHandler_LevelFiltering(t *testing.T) {
	var buf strings.Builder
	handler := &textHandler{writer: &buf, level: slog.LevelWarn}
	log := slog.New(handler)

	log.Info("should be dropped")
	log.Warn("should appear")

	got := buf.String()
	if strings.Contains(got, "should be dropped") {
		t.Errorf("Info record leaked past warn level: %q", got)
	}
	if !strings.Contains(got, "WARN should appear") {
		t.Errorf("Warn record missing: %q", got)
	}
}

func TestTextHandler_WithAttrs(t *testing.T) {
	var buf strings.Builder
	base := &textHandler{writer: &buf, level: slog.LevelInfo}
	withAttrs := base.WithAttrs([]slog.Attr{slog.String("component", "openfloor")})

	record := slog.NewRecord(time.Time{}, slog.LevelInfo, "hello", 0)
	if err := withAttrs.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if !strings.Contains(buf.String(), "component=openfloor") {
		t.Errorf("Bound attribute missing: %q", buf.String())
	}
	if len(base.attrs) != 0 {
		t.Error("WithAttrs mutated the base handler")
	}
}
