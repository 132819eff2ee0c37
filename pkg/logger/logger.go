// Package logger provides slog construction and attribute helpers shared
// by the session components and the demo server.
package logger

import (
	"log/slog"
	"os"
)

// New creates a JSON slog logger tagged with the given component name.
// Level defaults to Info; pass slog.LevelDebug for verbose output.
func New(component string, level ...slog.Level) *slog.Logger {
	lvl := slog.LevelInfo
	if len(level) > 0 {
		lvl = level[0]
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler).With(slog.String("component", component))
}
