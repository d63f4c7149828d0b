package logger

import (
	"log/slog"
	"os"
)

// New returns the application logger: structured JSON on stdout.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
