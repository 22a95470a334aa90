package logger

import (
	"log/slog"
	"os"
)

// SetupGlobal installs the process-wide slog logger. JSON output is meant
// for hosted deployments where log lines get scraped; text for local runs.
func SetupGlobal(debug bool, jsonOutput bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
