// Package hooks runs user scripts when notifications are shown or removed.
//
// Scripts live in one directory per hook point (for example
// <hooks_dir>/on-shown/10-notify-send) and run in name order. They
// receive the notification through TOASTBOX_* environment variables.
// Scripts run in the background so a slow hook never delays a producer.
package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/logging"
)

// Hook points.
const (
	PointShown   = "on-shown"
	PointRemoved = "on-removed"
)

// Failure modes.
const (
	FailureWarn   = "warn"
	FailureIgnore = "ignore"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxPending = 10
)

// Config configures a Runner.
type Config struct {
	// Dir holds one subdirectory per hook point.
	Dir string
	// FailureMode is FailureWarn or FailureIgnore.
	FailureMode string
	// Timeout bounds a single script run.
	Timeout time.Duration
	// MaxPending bounds the number of scripts running at once. Scripts
	// over the limit are skipped.
	MaxPending int
	Logger     logging.Logger
}

// Runner executes hook scripts. It implements center.Observer.
type Runner struct {
	cfg    Config
	logger logging.Logger
	binary string

	mu      sync.Mutex
	pending int
	closed  bool
	wg      sync.WaitGroup
}

type script struct {
	path string
	name string
}

// New creates a Runner. Zero values in cfg take defaults.
func New(cfg Config) *Runner {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxPending <= 0 {
		cfg.MaxPending = defaultMaxPending
	}
	if cfg.FailureMode != FailureIgnore {
		cfg.FailureMode = FailureWarn
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	r := &Runner{
		cfg:    cfg,
		logger: cfg.Logger.With("component", "hooks"),
	}
	if exe, err := os.Executable(); err == nil {
		r.binary = exe
	}
	return r
}

// Shown runs the on-shown scripts for n.
func (r *Runner) Shown(n domain.Notification) {
	r.Run(PointShown, n)
}

// Removed runs the on-removed scripts for n.
func (r *Runner) Removed(n domain.Notification) {
	r.Run(PointRemoved, n)
}

// Run starts the scripts for point and returns how many were started.
// A missing hook directory means no hooks.
func (r *Runner) Run(point string, n domain.Notification) int {
	scripts := r.scripts(point)
	if len(scripts) == 0 {
		return 0
	}

	env := append(os.Environ(),
		"TOASTBOX_HOOK_POINT="+point,
		"TOASTBOX_ID="+n.ID.String(),
		"TOASTBOX_SEVERITY="+n.Severity.String(),
		"TOASTBOX_MESSAGE="+n.Message,
		"TOASTBOX_DURATION_MS="+strconv.FormatInt(n.DurationMs(), 10),
		"TOASTBOX_TIMESTAMP="+time.Now().Format(time.RFC3339),
	)
	if r.binary != "" {
		env = append(env, "TOASTBOX_BINARY="+r.binary)
	}

	started := 0
	for _, s := range scripts {
		if !r.acquire(s.name) {
			continue
		}
		started++
		go r.run(s, point, env)
	}
	r.logger.Debug("hooks started", "point", point, "id", n.ID, "count", started)
	return started
}

// Wait blocks until every started script has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Close stops new scripts from starting and waits for running ones.
func (r *Runner) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.Wait()
	return nil
}

func (r *Runner) acquire(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	if r.pending >= r.cfg.MaxPending {
		r.warn("too many hooks pending, skipping", "script", name, "max", r.cfg.MaxPending)
		return false
	}
	r.pending++
	r.wg.Add(1)
	return true
}

func (r *Runner) release() {
	r.mu.Lock()
	r.pending--
	r.mu.Unlock()
	r.wg.Done()
}

func (r *Runner) run(s script, point string, env []string) {
	defer r.release()
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("hook panicked", "script", s.name, "panic", fmt.Sprint(p))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.Timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, s.path)
	cmd.Env = env
	output, err := cmd.CombinedOutput()
	elapsed := time.Since(start)

	switch {
	case ctx.Err() == context.DeadlineExceeded:
		r.warn("hook timed out", "point", point, "script", s.name, "after", elapsed)
	case err != nil:
		r.warn("hook failed", "point", point, "script", s.name, "error", err, "output", string(output))
	default:
		r.logger.Debug("hook completed", "point", point, "script", s.name, "duration", elapsed, "output", string(output))
	}
}

func (r *Runner) warn(msg string, args ...any) {
	if r.cfg.FailureMode == FailureIgnore {
		return
	}
	r.logger.Warn(msg, args...)
}

// scripts returns the executable files for point sorted by name.
func (r *Runner) scripts(point string) []script {
	if r.cfg.Dir == "" {
		return nil
	}
	dir := filepath.Join(r.cfg.Dir, point)
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []script
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		path := filepath.Join(dir, f.Name())
		info, err := os.Stat(path)
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}
		out = append(out, script{path: path, name: f.Name()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].name < out[j].name
	})
	return out
}
