// Package logger is a small process-wide logging facade. Output goes to a
// file so that it never interferes with the terminal UI.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu      sync.RWMutex
	logFile *os.File
	log     = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// InitLogging opens path for appending and routes all log output to it.
// Debug messages are only written when debug is true.
func InitLogging(debug bool, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	SetOutput(f, level)

	mu.Lock()
	logFile = f
	mu.Unlock()

	return nil
}

// SetOutput routes log output to w at the given minimum level.
func SetOutput(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()

	log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close flushes and closes the log file, if one was opened.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	log = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func logf(level slog.Level, format string, args ...any) {
	mu.RLock()
	l := log
	mu.RUnlock()

	if !l.Enabled(context.Background(), level) {
		return
	}

	l.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...any) { logf(slog.LevelDebug, format, args...) }

func Infof(format string, args ...any) { logf(slog.LevelInfo, format, args...) }

func Warnf(format string, args ...any) { logf(slog.LevelWarn, format, args...) }

func Errorf(format string, args ...any) { logf(slog.LevelError, format, args...) }
