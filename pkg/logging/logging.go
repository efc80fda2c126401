// Package logging builds the service's slog.Logger from configuration:
// a severity floor and a text or JSON output format.
package logging

import (
	"io"
	"log/slog"
)

// New creates a slog.Logger writing to w with the configured level and
// format. Callers pass os.Stdout in production; tests pass a buffer.
func New(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.Level.ToSlogLevel(),
	}

	if cfg.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
