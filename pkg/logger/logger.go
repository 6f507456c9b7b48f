package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is discarded until Init is called so packages can log from tests.
var Log = slog.New(slog.NewJSONHandler(io.Discard, nil))

type Config struct {
	Level string
	// File enables a rotated log file next to stdout output
	File string
}

func Init(cfg Config) {
	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
		})
	}

	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	Log = slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
