// Package logging provides file-based logging for ttt. The log file
// lives next to the data file and never receives passphrases, derived
// keys, or decrypted store contents.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogFileName is the log file created next to the data file.
const LogFileName = "ttt.log"

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger appending to <dir>/ttt.log and a close func.
// If dir is empty or the file cannot be opened, logging is disabled
// rather than failing the invocation.
func New(dir string, level slog.Level) (*slog.Logger, func()) {
	if dir == "" {
		return discard(), func() {}
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return discard(), func() {}
	}

	path := filepath.Join(dir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discard(), func() {}
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
		}
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
