package logger

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Init builds the process-wide logger. mode is the env name or the log format;
// "production" and "json" get the JSON handler, everything else text.
func Init(mode string, level string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: parseLevel(level, mode)}
	if mode == "production" || mode == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		// lazy initialize a development logger to avoid nil pointer panics
		Init("development", "")
	}
	return defaultLogger
}

// L is a short alias used by cmd wiring.
func L() *slog.Logger {
	return LoggerWrapper()
}

func parseLevel(level, mode string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if mode == "production" || mode == "json" {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
