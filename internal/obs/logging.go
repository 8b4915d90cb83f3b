// Package obs contains observability utilities: logging, tracing and
// metrics setup.
package obs

import (
	"log/slog"
	"os"
)

// NewLogger returns a structured JSON logger at info level.
func NewLogger() *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(h)
}
