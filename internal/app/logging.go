package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// ParseLogLevel parses a string into an slog.Level, defaulting to
// Info for anything unrecognized rather than erroring on a typo'd
// config value.
func ParseLogLevel(s string) slog.Level {
	switch s {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "WARN", "warning", "WARNING":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	Level  slog.Level
	Output io.Writer
	JSON   bool
}

// NewLogger builds the application's structured logger: a colorized
// tint handler when Output is a terminal and JSON wasn't explicitly
// requested, a plain slog.JSONHandler otherwise (headless runs, piped
// output, or a config file that asked for JSON logs).
func NewLogger(cfg LoggerConfig) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	if !cfg.JSON {
		if f, ok := cfg.Output.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return slog.New(tint.NewHandler(f, &tint.Options{Level: cfg.Level}))
		}
	}

	return slog.New(slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: cfg.Level}))
}
