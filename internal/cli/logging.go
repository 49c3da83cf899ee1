package cli

import (
	"io"
	"log/slog"
)

// NewLogger returns a JSON logger writing to w at the configured level.
// An invalid level falls back to info; Config.Validate reports it first.
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
