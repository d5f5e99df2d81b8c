package main

import (
	"io"
	"log/slog"
)

// newLogger builds the diagnostic logger. The rename report goes to stdout;
// this only carries debug detail, warnings and errors.
func newLogger(out io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}
