// Package logger owns the process-wide slog logger. The TUI owns stdout, so
// records go to a file; until Init is called every logger discards.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// DefaultLogPath is used when no path is configured.
const DefaultLogPath = "/tmp/devgrid-debug.log"

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar)
	root     *slog.Logger
	logFile  *os.File
)

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Init opens path for appending and installs a text handler writing to it.
// Calling Init again replaces the previous file.
func Init(path string, level slog.Level) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		path = DefaultLogPath
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	levelVar.Set(level)
	root = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	root.Info("logger initialized", "path", path, "level", level.String())
	return nil
}

// SetLevel changes the minimum level of every logger handed out so far.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// Component returns a logger with the component attribute attached.
func Component(name string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if root == nil {
		return slog.New(slog.DiscardHandler)
	}
	return root.With(slog.String("component", name))
}

// Close closes the log file. Later loggers discard.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	root = nil
}
