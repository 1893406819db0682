package driver

import (
	"context"
	"log/slog"
)

// LevelTrace sits just above Info so per-function progress can be switched
// on without enabling debug output from other packages.
const LevelTrace slog.Level = slog.LevelInfo + 1

// Trace logs at LevelTrace through the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}
