package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/toastbox/internal/colors"
	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/tui/state"
)

// Model defines the narrow TUI model surface used by command wiring.
type Model interface {
	tea.Model
	Notifications() []domain.Notification
}

// Client defines dependencies needed by the commands that open a TUI.
type Client interface {
	CreateModel(opts state.Options) (Model, error)
	RunProgram(ctx context.Context, model Model, fullscreen bool) error
}

// DefaultClient is the default adapter-based implementation used by CLI wiring.
type DefaultClient struct {
	programRunner ProgramRunner
}

// NewDefaultClient creates a default TUI client adapter.
// If programRunner is nil, a DefaultProgramRunner will be used.
func NewDefaultClient(programRunner ProgramRunner) *DefaultClient {
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	return &DefaultClient{programRunner: programRunner}
}

// CreateModel builds a TUI model subscribed to opts.Center.
func (d *DefaultClient) CreateModel(opts state.Options) (Model, error) {
	return state.NewModel(opts)
}

// RunProgram starts the bubbletea program. A fullscreen program uses the
// alternate screen; otherwise it renders inline. Cancelling ctx stops the
// program and is not reported as an error.
func (d *DefaultClient) RunProgram(ctx context.Context, model Model, fullscreen bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if fullscreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if err := d.programRunner.Run(model, opts...); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}
