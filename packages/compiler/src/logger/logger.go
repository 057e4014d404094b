package logger

import (
	"io"
	"log/slog"
	"os"
)

var Log = slog.Default()

// Setup initializes the global logger based on the environment.
// If env is "production", it uses JSON handler.
// Otherwise, it uses Text handler (more human-readable).
//
// Records go to stderr: stdout carries the lowered output.
func Setup(env string) {
	SetupWriter(env, os.Stderr)
}

// SetupWriter is Setup with an explicit destination
func SetupWriter(env string, w io.Writer) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	if env == "production" {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}
