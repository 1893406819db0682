package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/instclass/driver"
)

// levelAll lets every record through, trace records included.
const levelAll = slog.Level(-100)

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "trace":
		return levelAll, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown level %q", name)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// SetupLogging installs the default slog logger described by cfg. Records go
// to cfg.Logging.File when set and to stderr otherwise. The returned closer
// flushes and closes the log file.
func SetupLogging(cfg *Config, stderr io.Writer) (io.Closer, error) {
	level, err := parseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	out := stderr
	closer := io.Closer(closerFunc(func() error { return nil }))

	if cfg.Logging.File != "" {
		f, err := os.Create(cfg.Logging.File)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}

		out = f
		closer = closerFunc(func() error {
			if err := f.Sync(); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		})
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelName,
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	slog.SetDefault(slog.New(handler))

	return closer, nil
}

// replaceLevelName prints driver.LevelTrace as TRACE instead of INFO+1.
func replaceLevelName(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}

	if level, ok := a.Value.Any().(slog.Level); ok && level == driver.LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}

	return a
}
