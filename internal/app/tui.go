package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/logging"
	"github.com/cristianoliveira/toastbox/internal/tui/state"
)

// TUIInput represents tui command inputs after flag parsing.
type TUIInput struct {
	// Severity is the composer's initial severity.
	Severity string
}

// TUIUseCase opens the interactive composer over a fresh center.
type TUIUseCase struct {
	client ToastClient
	logger logging.Logger
}

// NewTUIUseCase creates a new tui use-case.
func NewTUIUseCase(client ToastClient, logger logging.Logger) *TUIUseCase {
	if client == nil {
		panic("NewTUIUseCase: client dependency cannot be nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &TUIUseCase{client: client, logger: logger}
}

// Execute runs the TUI until the user quits or ctx is cancelled. Live
// notifications are discarded on exit.
func (u *TUIUseCase) Execute(ctx context.Context, input TUIInput) error {
	severity := domain.SeverityInfo
	if strings.TrimSpace(input.Severity) != "" {
		s, err := domain.ParseSeverity(input.Severity)
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		severity = s
	}

	c, closeFn, err := u.client.NewCenter()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	defer func() {
		if err := closeFn(); err != nil {
			u.logger.Warn("teardown failed", "error", err)
		}
	}()

	model, err := u.client.CreateModel(state.Options{
		Center:     c,
		ToastWidth: u.client.ToastWidth(),
		Composer:   true,
		Severity:   severity,
		Logger:     u.logger,
	})
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return u.client.RunProgram(ctx, model, true)
}
