package debug

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"tonedrill/config"
)

var (
	file    *os.File
	mu      sync.Mutex
	enabled bool
	logger  = discard()
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Enable starts debug logging to ~/.config/tonedrill/debug.log.
// The TUI owns stdout, so debug output has to go to a file.
func Enable() error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	return EnableAt(filepath.Join(dir, "debug.log"))
}

// EnableAt starts debug logging to path, truncating it
func EnableAt(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	enabled = true
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Debug("=== Debug logging started ===", "category", "debug")

	return nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
	logger = discard()
}

// Enabled reports whether a debug log file is open
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Logger returns the current debug logger. It discards output while disabled.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes a message under category with optional key/value pairs
func Log(category, msg string, args ...any) {
	mu.Lock()
	l := logger
	mu.Unlock()

	l.Debug(msg, append([]any{"category", category}, args...)...)
}
