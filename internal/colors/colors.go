// Package colors provides color output utilities.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red     = "\033[0;31m"
	Green   = "\033[0;32m"
	Yellow  = "\033[1;33m"
	Blue    = "\033[0;34m"
	Magenta = "\033[0;35m"
	Cyan    = "\033[0;36m"
	Reset   = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu           sync.RWMutex
	debugEnabled bool
	quiet        bool
	logger       Logger
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("TOASTBOX_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetQuiet suppresses informational and success output.
// Errors and warnings are always printed.
func SetQuiet(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil writers restore the process streams.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

type line struct {
	toErr  bool
	color  string
	prefix string
	mirror func(Logger, string)
	muted  bool
}

func emit(l line, msgs []string) {
	msg := strings.Join(msgs, " ")

	mu.RLock()
	lg := logger
	w := stdout
	if l.toErr {
		w = stderr
	}
	muted := l.muted && quiet
	mu.RUnlock()

	if lg != nil && l.mirror != nil {
		l.mirror(lg, msg)
	}
	if muted {
		return
	}
	text := l.color + l.prefix + Reset + msg + Reset
	if l.prefix == "" {
		text = l.color + msg + Reset
	}
	if _, err := fmt.Fprintln(w, text); err != nil {
		// Direct write to the process stderr, ignore errors
		fmt.Fprintf(os.Stderr, "failed to print message: %v\n", err)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	emit(line{
		toErr:  true,
		color:  Red,
		prefix: "Error: ",
		mirror: func(l Logger, m string) { l.Error(m) },
	}, msgs)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	emit(line{
		toErr:  true,
		color:  Yellow,
		prefix: "Warning: ",
		mirror: func(l Logger, m string) { l.Warn(m) },
	}, msgs)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	emit(line{
		color:  Green,
		prefix: checkmark + " ",
		mirror: func(l Logger, m string) { l.Info(m, "type", "success") },
		muted:  true,
	}, msgs)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	emit(line{
		color:  Blue,
		mirror: func(l Logger, m string) { l.Info(m) },
		muted:  true,
	}, msgs)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	mu.RLock()
	enabled := debugEnabled
	mu.RUnlock()
	if !enabled {
		return
	}
	emit(line{
		toErr:  true,
		color:  Cyan,
		prefix: "Debug: ",
		mirror: func(l Logger, m string) { l.Debug(m) },
	}, msgs)
}

// ForSeverity returns the color code used for a notification severity.
func ForSeverity(severity string) string {
	switch severity {
	case "error":
		return Red
	case "warning":
		return Yellow
	case "success":
		return Green
	case "info":
		return Blue
	default:
		return ""
	}
}
