package main

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestColorHandlerUncoloredWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	h := newColorHandler(&buf, levelVar)
	logger := slog.New(h)

	logger.Error("boom")

	out := buf.String()
	if bytes.Contains(buf.Bytes(), []byte("\033[")) {
		t.Fatalf("expected no ANSI escapes for a non-terminal writer, got %q", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("boom")) {
		t.Fatalf("expected message to be logged, got %q", out)
	}
}

func TestLevelColor(t *testing.T) {
	if levelColor(slog.LevelDebug) != "" {
		t.Fatalf("debug should not be colored")
	}
	if levelColor(slog.LevelWarn) == "" {
		t.Fatalf("warn should be colored")
	}
	if levelColor(slog.LevelError) == "" {
		t.Fatalf("error should be colored")
	}
}
