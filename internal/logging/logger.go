// Package logging configures the charmbracelet/log loggers used by cctok.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide default logger.
var (
	defaultMu     sync.RWMutex
	defaultLogger *log.Logger
)

// Levels lists the accepted level names, most verbose first.
func Levels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ParseLevel maps a level name to a log.Level. Names are case-insensitive
// and "warning" is accepted for "warn". The second result is false for
// unrecognized names, in which case the level is info.
func ParseLevel(level string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel, true
	case "info":
		return log.InfoLevel, true
	case "warn", "warning":
		return log.WarnLevel, true
	case "error":
		return log.ErrorLevel, true
	default:
		return log.InfoLevel, false
	}
}

// New creates a stderr logger at the given level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	lvl, _ := ParseLevel(level)
	logger.SetLevel(lvl)
	return logger
}

// NewInteractive creates a logger for commands that talk to a person at a
// terminal: info level, prefixed with the program name.
func NewInteractive() *log.Logger {
	logger := New("info")
	logger.SetPrefix("cctok")
	return logger
}

// Default returns the process-wide logger, creating an info-level one on
// first use.
func Default() *log.Logger {
	defaultMu.RLock()
	logger := defaultLogger
	defaultMu.RUnlock()
	if logger != nil {
		return logger
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	lvl, _ := ParseLevel(level)
	Default().SetLevel(lvl)
}
