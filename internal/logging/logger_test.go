package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestPrettyHandlerFormatsRecord(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)
	handler := newPrettyHandler(&buf, levelVar, false)
	logger := slog.New(handler).With("component", "catalog")

	logger.Info("record added", "id", int64(7), "path", "/media/a clip.mp4")

	line := buf.String()
	if !strings.Contains(line, " INFO catalog: record added") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "id=7") {
		t.Fatalf("missing id attr: %q", line)
	}
	if !strings.Contains(line, `path="/media/a clip.mp4"`) {
		t.Fatalf("expected quoted path attr: %q", line)
	}
}

func TestPrettyHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	handler := newPrettyHandler(&buf, levelVar, false)

	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be disabled at warn level")
	}

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "suppressed", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPrettyHandlerFlattensGroups(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	handler := newPrettyHandler(&buf, levelVar, false)
	logger := slog.New(handler).WithGroup("dist")

	logger.Info("bundle copied", "target", "Everything.exe")

	if !strings.Contains(buf.String(), "dist.target=Everything.exe") {
		t.Fatalf("expected grouped attr, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
