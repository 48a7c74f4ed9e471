// Package errors routes user-facing messages to an output surface: the
// terminal for CLI commands, or the notification center inside the TUI.
package errors

import (
	stderrors "errors"
	"sync"

	"github.com/cristianoliveira/toastbox/internal/domain"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console surface a CLIHandler writes to.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler handles errors by printing to stdout/stderr.
type CLIHandler struct {
	colors ColorOutput
	mu     sync.Mutex
}

// NewCLIHandler creates a CLIHandler writing to colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

// Error, Warning, Info and Success serialize writes so concurrent producers
// never interleave lines.
func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Success(msg)
}

// Report sends err to h. Invalid input is reported as a warning, anything
// else as an error. A nil err is ignored.
func Report(h ErrorHandler, err error) {
	if err == nil || h == nil {
		return
	}
	if stderrors.Is(err, domain.ErrInvalidArgument) {
		h.Warning(err.Error())
		return
	}
	h.Error(err.Error())
}
