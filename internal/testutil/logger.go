package testutil

import (
	"io"
	"log/slog"
	"os"
)

// NopLogger returns a logger that discards everything. Most suites use
// this so assertions stay readable.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// ErrorLogger returns a logger that only surfaces errors, for tests
// where a failing dependency should still be visible.
func ErrorLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}
