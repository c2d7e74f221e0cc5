// Package logging builds the application logger.
package logging

import (
	"io"
	"log/slog"
)

// New creates a configured logger writing to w. The tcell screen owns the
// terminal during a run, so callers pass a file (or stderr for headless
// commands) rather than stdout.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
