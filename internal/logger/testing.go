package logger

import (
	"io"
	"log/slog"
	"os"
)

// NewTestLogger creates a logger for tests.
// Output is discarded below WARN; set TEST_DEBUG to see debug output on stdout.
func NewTestLogger() *slog.Logger {
	if os.Getenv("TEST_DEBUG") != "" {
		return NewLogger(Config{Level: slog.LevelDebug, Output: os.Stdout})
	}
	return NewLogger(Config{Level: slog.LevelWarn, Output: io.Discard})
}
