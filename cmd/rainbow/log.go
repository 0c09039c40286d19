package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mattn/go-isatty"
)

// colorHandler wraps a slog.TextHandler and, only when its writer is a
// real terminal, prefixes warning/error records with an ANSI color code.
// No call site in the corpus exercises go-isatty directly (it only shows
// up as a go.mod dependency), so this is grounded on the library's public
// API rather than an in-corpus usage to imitate.
type colorHandler struct {
	inner   slog.Handler
	colored bool
}

func newColorHandler(w io.Writer, levelVar *slog.LevelVar) slog.Handler {
	colored := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &colorHandler{
		inner:   slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}),
		colored: colored,
	}
}

func (h *colorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *colorHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.colored {
		return h.inner.Handle(ctx, r)
	}
	if code := levelColor(r.Level); code != "" {
		r.Message = fmt.Sprintf("%s%s\033[0m", code, r.Message)
	}
	return h.inner.Handle(ctx, r)
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &colorHandler{inner: h.inner.WithAttrs(attrs), colored: h.colored}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	return &colorHandler{inner: h.inner.WithGroup(name), colored: h.colored}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "\033[31m"
	case level >= slog.LevelWarn:
		return "\033[33m"
	default:
		return ""
	}
}
