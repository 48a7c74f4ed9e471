package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cristianoliveira/toastbox/internal/center"
	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/format"
	"github.com/cristianoliveira/toastbox/internal/logging"
	"github.com/cristianoliveira/toastbox/internal/scheduler"
	tuiapp "github.com/cristianoliveira/toastbox/internal/tui/app"
	"github.com/cristianoliveira/toastbox/internal/tui/state"
)

// ToastClient defines dependencies required to display notifications.
type ToastClient interface {
	NewCenter() (*center.Center, func() error, error)
	CreateModel(opts state.Options) (tuiapp.Model, error)
	RunProgram(ctx context.Context, model tuiapp.Model, fullscreen bool) error
	ToastWidth() int
}

// ShowInput represents show command inputs after flag parsing.
type ShowInput struct {
	Args     []string
	Severity string
	// Duration overrides the severity default when non-empty.
	Duration string
	// Plain prints lines instead of opening a TUI.
	Plain bool
	// Color enables ANSI colors in plain output.
	Color  bool
	Output io.Writer
}

// ShowUseCase shows one notification and renders it until it is dismissed.
type ShowUseCase struct {
	client ToastClient
	logger logging.Logger
}

// NewShowUseCase creates a new show use-case.
func NewShowUseCase(client ToastClient, logger logging.Logger) *ShowUseCase {
	if client == nil {
		panic("NewShowUseCase: client dependency cannot be nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &ShowUseCase{client: client, logger: logger}
}

// Execute validates the input, shows the notification and blocks until it
// leaves the stack or ctx is cancelled.
func (u *ShowUseCase) Execute(ctx context.Context, input ShowInput) error {
	message := strings.Join(input.Args, " ")
	if err := domain.ValidateMessage(message); err != nil {
		return fmt.Errorf("show: %w", err)
	}

	severity := domain.SeverityError
	if strings.TrimSpace(input.Severity) != "" {
		s, err := domain.ParseSeverity(input.Severity)
		if err != nil {
			return fmt.Errorf("show: %w", err)
		}
		severity = s
	}

	var opts []center.ShowOption
	if strings.TrimSpace(input.Duration) != "" {
		d, err := domain.ParseDuration(input.Duration)
		if err != nil {
			return fmt.Errorf("show: %w", err)
		}
		opts = append(opts, center.WithDuration(d))
	}

	c, closeFn, err := u.client.NewCenter()
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	defer func() {
		if err := closeFn(); err != nil {
			u.logger.Warn("teardown failed", "error", err)
		}
	}()

	if input.Plain {
		out := input.Output
		if out == nil {
			out = os.Stdout
		}
		return u.runPlain(ctx, c, message, severity, opts, out, input.Color)
	}

	model, err := u.client.CreateModel(state.Options{
		Center:        c,
		ToastWidth:    u.client.ToastWidth(),
		ExitWhenEmpty: true,
		Logger:        u.logger,
	})
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	if _, err := c.Show(message, severity, opts...); err != nil {
		return fmt.Errorf("show: %w", err)
	}
	return u.client.RunProgram(ctx, model, false)
}

// runPlain prints the notification, then its dismissal once the scheduler
// removes it. Sticky notifications print once and return.
func (u *ShowUseCase) runPlain(ctx context.Context, c *center.Center, message string, severity domain.Severity, opts []center.ShowOption, w io.Writer, color bool) error {
	expired := make(chan domain.ID, 1)
	sched := scheduler.New(c,
		scheduler.WithLogger(u.logger),
		scheduler.OnExpire(func(id domain.ID) {
			select {
			case expired <- id:
			default:
			}
		}),
	)
	defer sched.Stop()

	id, err := c.Show(message, severity, opts...)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	n, ok := c.Get(id)
	if !ok {
		return nil
	}
	if _, err := fmt.Fprintln(w, format.NotificationLine(n, color)); err != nil {
		return err
	}
	if n.Sticky() {
		return nil
	}
	sched.Track(n)

	select {
	case <-ctx.Done():
		return nil
	case <-expired:
		_, err := fmt.Fprintln(w, format.DismissedLine(n))
		return err
	}
}
