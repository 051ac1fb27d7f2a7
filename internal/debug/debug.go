// Package debug provides optional file-based debug logging.
//
// When the LAYOUT_DEBUG environment variable is set to a file path, debug
// messages are appended to that file. Otherwise, logging is a no-op.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// EnvVar names the environment variable holding the debug log path.
const EnvVar = "LAYOUT_DEBUG"

var (
	mu      sync.Mutex
	logger  *log.Logger
	logFile *os.File
)

// Logger returns the process-wide debug logger. The first call opens the
// file named by LAYOUT_DEBUG; when the variable is unset, or the file cannot
// be opened, the returned logger discards everything.
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		return logger
	}
	var w io.Writer = io.Discard
	level := log.FatalLevel
	if path := os.Getenv(EnvVar); path != "" {
		if f, err := open(path); err == nil {
			logFile = f
			w = f
			level = log.DebugLevel
		}
	}
	logger = New(w, level)
	return logger
}

// New creates a logger with the timestamp format shared by every logger in
// this module.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           level,
		Prefix:          "layout",
	})
}

func open(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return f, nil
}

// Close closes the debug log file, if one was opened. The next Logger call
// re-reads LAYOUT_DEBUG.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	logger = nil
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
