// Package app holds the use cases behind the CLI commands.
package app

import (
	stderrors "errors"
	"fmt"

	"github.com/cristianoliveira/toastbox/internal/center"
	"github.com/cristianoliveira/toastbox/internal/config"
	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/history"
	"github.com/cristianoliveira/toastbox/internal/hooks"
	"github.com/cristianoliveira/toastbox/internal/logging"
	tuiapp "github.com/cristianoliveira/toastbox/internal/tui/app"
	"github.com/cristianoliveira/toastbox/internal/tui/render"
)

// RuntimeConfig is the configuration a Runtime is built from.
type RuntimeConfig struct {
	Durations      domain.Durations
	HistoryEnabled bool
	HistoryPath    string
	ToastWidth     int
	// Hooks runs user scripts on show and remove when Hooks.Dir is set.
	Hooks  hooks.Config
	Logger logging.Logger
}

// RuntimeConfigFromGlobal reads a RuntimeConfig from the loaded configuration.
func RuntimeConfigFromGlobal() RuntimeConfig {
	return RuntimeConfig{
		Durations:      config.Durations(),
		HistoryEnabled: config.GetBool("history_enabled", true),
		HistoryPath:    config.Get("history_path", ""),
		ToastWidth:     config.GetInt("toast_width", render.DefaultToastWidth),
		Hooks: hooks.Config{
			Dir:         config.Get("hooks_dir", ""),
			FailureMode: config.Get("hooks_failure_mode", hooks.FailureWarn),
			Timeout:     config.GetDuration("hooks_timeout", 0),
			MaxPending:  config.GetInt("hooks_max_pending", 0),
		},
		Logger: logging.GetGlobal(),
	}
}

// Runtime builds the per-process collaborators: a notification center with
// its journal, the history store, and the TUI program runner.
type Runtime struct {
	*tuiapp.DefaultClient
	cfg RuntimeConfig
}

var (
	_ ToastClient   = (*Runtime)(nil)
	_ HistoryClient = (*Runtime)(nil)
)

// NewRuntime creates a Runtime. A nil runner uses the default bubbletea runner.
func NewRuntime(cfg RuntimeConfig, runner tuiapp.ProgramRunner) *Runtime {
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	if cfg.ToastWidth <= 0 {
		cfg.ToastWidth = render.DefaultToastWidth
	}
	return &Runtime{
		DefaultClient: tuiapp.NewDefaultClient(runner),
		cfg:           cfg,
	}
}

// NewCenter returns a center using the configured durations. When history
// is enabled every show and remove is journaled; a journal that cannot be
// opened is logged and skipped. Hook scripts run when a hooks dir is set.
// The returned func tears everything down.
func (r *Runtime) NewCenter() (*center.Center, func() error, error) {
	opts := []center.Option{
		center.WithDurations(r.cfg.Durations),
		center.WithLogger(r.cfg.Logger),
	}

	var store *history.Store
	if r.cfg.HistoryEnabled && r.cfg.HistoryPath != "" {
		s, err := history.Open(r.cfg.HistoryPath)
		if err != nil {
			r.cfg.Logger.Warn("history disabled for this run", "path", r.cfg.HistoryPath, "error", err)
		} else {
			store = s
			opts = append(opts, center.WithObserver(history.NewObserver(store, r.cfg.Logger)))
		}
	}

	var runner *hooks.Runner
	if r.cfg.Hooks.Dir != "" {
		hcfg := r.cfg.Hooks
		if hcfg.Logger == nil {
			hcfg.Logger = r.cfg.Logger
		}
		runner = hooks.New(hcfg)
		opts = append(opts, center.WithObserver(runner))
	}

	c := center.New(opts...)
	closeFn := func() error {
		err := c.Close()
		if runner != nil {
			err = stderrors.Join(err, runner.Close())
		}
		if store != nil {
			err = stderrors.Join(err, store.Close())
		}
		return err
	}
	return c, closeFn, nil
}

// OpenHistory opens the configured journal.
func (r *Runtime) OpenHistory() (HistoryStore, error) {
	if r.cfg.HistoryPath == "" {
		return nil, fmt.Errorf("history: no history_path configured")
	}
	store, err := history.Open(r.cfg.HistoryPath)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// ToastWidth returns the configured toast width.
func (r *Runtime) ToastWidth() int {
	return r.cfg.ToastWidth
}
