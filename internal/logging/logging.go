// Package logging builds the slog loggers used across xlcombine.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Debug records are only emitted
// when verbose is set.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
