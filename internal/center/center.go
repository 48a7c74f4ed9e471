// Package center implements the notification center: the single owner of
// the ordered collection of live notifications.
//
// Producers append records with Show and its severity wrappers. The
// presentation layer reads the collection through List or Subscribe and
// calls Remove when a toast's own timer expires or the user dismisses it.
// The center never expires records by itself and has no timers.
package center

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/logging"
)

// Snapshot is an immutable view of the live collection.
type Snapshot struct {
	// Version increases by one on every mutation.
	Version       uint64
	Notifications []domain.Notification
}

// Observer is notified after each mutation, outside the center's lock.
// Events are delivered one at a time in mutation order, so a Removed never
// precedes the matching Shown. With concurrent producers a call may return
// before its events reach the observers; Close waits for them.
// Observers may show or remove notifications but must not call Close.
type Observer interface {
	Shown(n domain.Notification)
	Removed(n domain.Notification)
}

// Center owns the ordered collection of live notifications.
// All methods are safe for concurrent use. A nil *Center behaves as an
// uninitialized center and returns domain.ErrContextUnavailable.
type Center struct {
	mu          sync.Mutex
	items       []domain.Notification
	version     uint64
	closed      bool
	subscribers map[*subscription]struct{}
	wg          sync.WaitGroup
	pending     []event
	dispatching bool

	durations domain.Durations
	logger    logging.Logger
	observers []Observer
	now       func() time.Time
	newID     func(time.Time) domain.ID
}

// Option configures a Center.
type Option func(*Center)

// WithDurations sets the per-severity default durations.
func WithDurations(d domain.Durations) Option {
	return func(c *Center) {
		c.durations = d
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l logging.Logger) Option {
	return func(c *Center) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers an observer. It can be given multiple times.
func WithObserver(o Observer) Option {
	return func(c *Center) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithClock overrides the time source used for CreatedAt and ids.
func WithClock(now func() time.Time) Option {
	return func(c *Center) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(gen func(time.Time) domain.ID) Option {
	return func(c *Center) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// New creates an initialized Center.
func New(opts ...Option) *Center {
	c := &Center{
		subscribers: make(map[*subscription]struct{}),
		durations:   domain.DefaultDurations(),
		logger:      logging.Nop(),
		now:         time.Now,
	}
	c.newID = newSequencedGenerator()
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "center")
	return c
}

type showConfig struct {
	duration    time.Duration
	hasDuration bool
}

// ShowOption customizes a single Show call.
type ShowOption func(*showConfig)

// WithDuration overrides the severity's default duration.
// Zero disables auto-dismiss; negative values are rejected by Show.
func WithDuration(d time.Duration) ShowOption {
	return func(sc *showConfig) {
		sc.duration = d
		sc.hasDuration = true
	}
}

// Show appends a notification and returns its id.
// Unknown severities and negative durations fail with domain.ErrInvalidArgument.
// The message is stored as given.
func (c *Center) Show(message string, severity domain.Severity, opts ...ShowOption) (domain.ID, error) {
	if c == nil {
		return "", domain.ErrContextUnavailable
	}
	if !severity.IsValid() {
		return "", fmt.Errorf("center: show: %w: unknown severity %q", domain.ErrInvalidArgument, severity)
	}

	var sc showConfig
	for _, opt := range opts {
		opt(&sc)
	}
	duration := c.durations.For(severity)
	if sc.hasDuration {
		if err := domain.ValidateDuration(sc.duration); err != nil {
			return "", fmt.Errorf("center: show: %w", err)
		}
		duration = sc.duration
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return "", domain.ErrContextUnavailable
	}
	now := c.now()
	n := domain.Notification{
		ID:        c.newID(now),
		Message:   message,
		Severity:  severity,
		Duration:  duration,
		CreatedAt: now,
	}
	c.items = append(c.items, n)
	c.publishLocked()
	c.enqueueLocked(event{n: n})
	c.wg.Add(1)
	c.mu.Unlock()
	defer c.wg.Done()

	c.logger.Debug("notification shown", "id", n.ID, "severity", n.Severity, "duration_ms", n.DurationMs())
	c.dispatch()
	return n.ID, nil
}

// ShowError shows an error notification.
func (c *Center) ShowError(message string, opts ...ShowOption) (domain.ID, error) {
	return c.Show(message, domain.SeverityError, opts...)
}

// ShowSuccess shows a success notification.
func (c *Center) ShowSuccess(message string, opts ...ShowOption) (domain.ID, error) {
	return c.Show(message, domain.SeveritySuccess, opts...)
}

// ShowInfo shows an info notification.
func (c *Center) ShowInfo(message string, opts ...ShowOption) (domain.ID, error) {
	return c.Show(message, domain.SeverityInfo, opts...)
}

// ShowWarning shows a warning notification.
func (c *Center) ShowWarning(message string, opts ...ShowOption) (domain.ID, error) {
	return c.Show(message, domain.SeverityWarning, opts...)
}

// Remove removes the notification with the given id, keeping the order of
// the rest. Unknown ids are ignored so late timers cannot fail.
func (c *Center) Remove(id domain.ID) error {
	if c == nil {
		return domain.ErrContextUnavailable
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrContextUnavailable
	}
	idx := slices.IndexFunc(c.items, func(n domain.Notification) bool { return n.ID == id })
	if idx < 0 {
		c.mu.Unlock()
		return nil
	}
	removed := c.items[idx]
	c.items = slices.Delete(c.items, idx, idx+1)
	c.publishLocked()
	c.enqueueLocked(event{n: removed, removed: true})
	c.wg.Add(1)
	c.mu.Unlock()
	defer c.wg.Done()

	c.logger.Debug("notification removed", "id", removed.ID)
	c.dispatch()
	return nil
}

// Clear removes every live notification and returns how many were removed.
func (c *Center) Clear() (int, error) {
	if c == nil {
		return 0, domain.ErrContextUnavailable
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, domain.ErrContextUnavailable
	}
	removed := c.items
	c.items = nil
	if len(removed) > 0 {
		c.publishLocked()
	}
	for _, n := range removed {
		c.enqueueLocked(event{n: n, removed: true})
	}
	c.wg.Add(1)
	c.mu.Unlock()
	defer c.wg.Done()

	c.dispatch()
	if len(removed) > 0 {
		c.logger.Debug("notifications cleared", "count", len(removed))
	}
	return len(removed), nil
}

// List returns a copy of the live collection in display order.
func (c *Center) List() ([]domain.Notification, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Notifications, nil
}

// Snapshot returns the current collection with its version.
func (c *Center) Snapshot() (Snapshot, error) {
	if c == nil {
		return Snapshot{}, domain.ErrContextUnavailable
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return Snapshot{}, domain.ErrContextUnavailable
	}
	return c.snapshotLocked(), nil
}

// Get returns the live notification with the given id.
func (c *Center) Get(id domain.ID) (domain.Notification, bool) {
	if c == nil {
		return domain.Notification{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.items {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Notification{}, false
}

// Len returns the number of live notifications.
func (c *Center) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Close tears the center down. Live records are discarded without
// notifying observers and every subscription channel is closed. Close
// returns once observer callbacks already in flight have finished.
// Later calls on the center fail with domain.ErrContextUnavailable.
func (c *Center) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	discarded := len(c.items)
	c.items = nil
	for sub := range c.subscribers {
		sub.close()
	}
	clear(c.subscribers)
	c.mu.Unlock()

	c.wg.Wait()
	c.logger.Debug("center closed", "discarded", discarded)
	return nil
}

func (c *Center) snapshotLocked() Snapshot {
	return Snapshot{
		Version:       c.version,
		Notifications: slices.Clone(c.items),
	}
}

// publishLocked bumps the version and pushes the new snapshot to every subscriber.
func (c *Center) publishLocked() {
	c.version++
	if len(c.subscribers) == 0 {
		return
	}
	snap := c.snapshotLocked()
	for sub := range c.subscribers {
		sub.offer(snap)
	}
}

// event is a mutation waiting to be delivered to observers.
type event struct {
	n       domain.Notification
	removed bool
}

func (c *Center) enqueueLocked(ev event) {
	if len(c.observers) == 0 {
		return
	}
	c.pending = append(c.pending, ev)
}

// dispatch delivers queued events in order. Only one goroutine delivers at
// a time; a caller that finds delivery in progress leaves its events to
// that goroutine. The caller must hold a wg slot.
func (c *Center) dispatch() {
	c.mu.Lock()
	if c.dispatching {
		c.mu.Unlock()
		return
	}
	c.dispatching = true
	for len(c.pending) > 0 {
		batch := c.pending
		c.pending = nil
		c.mu.Unlock()
		for _, ev := range batch {
			c.deliver(ev)
		}
		c.mu.Lock()
	}
	c.dispatching = false
	c.mu.Unlock()
}

func (c *Center) deliver(ev event) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("observer panicked", "id", ev.n.ID, "panic", fmt.Sprint(p))
		}
	}()
	for _, o := range c.observers {
		if ev.removed {
			o.Removed(ev.n)
		} else {
			o.Shown(ev.n)
		}
	}
}

type ctxKey struct{}

// WithCenter returns a copy of ctx carrying c.
func WithCenter(ctx context.Context, c *Center) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the center stored in ctx.
// It fails with domain.ErrContextUnavailable when none was attached or
// the attached center has been closed.
func FromContext(ctx context.Context) (*Center, error) {
	c, ok := ctx.Value(ctxKey{}).(*Center)
	if !ok || c == nil {
		return nil, domain.ErrContextUnavailable
	}
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, domain.ErrContextUnavailable
	}
	return c, nil
}

// ShowContext resolves the center from ctx and shows a notification.
func ShowContext(ctx context.Context, message string, severity domain.Severity, opts ...ShowOption) (domain.ID, error) {
	c, err := FromContext(ctx)
	if err != nil {
		return "", err
	}
	return c.Show(message, severity, opts...)
}

// ShowErrorContext shows an error notification on the center in ctx.
func ShowErrorContext(ctx context.Context, message string, opts ...ShowOption) (domain.ID, error) {
	return ShowContext(ctx, message, domain.SeverityError, opts...)
}

// ShowSuccessContext shows a success notification on the center in ctx.
func ShowSuccessContext(ctx context.Context, message string, opts ...ShowOption) (domain.ID, error) {
	return ShowContext(ctx, message, domain.SeveritySuccess, opts...)
}

// ShowInfoContext shows an info notification on the center in ctx.
func ShowInfoContext(ctx context.Context, message string, opts ...ShowOption) (domain.ID, error) {
	return ShowContext(ctx, message, domain.SeverityInfo, opts...)
}

// ShowWarningContext shows a warning notification on the center in ctx.
func ShowWarningContext(ctx context.Context, message string, opts ...ShowOption) (domain.ID, error) {
	return ShowContext(ctx, message, domain.SeverityWarning, opts...)
}

// RemoveContext removes a notification from the center in ctx.
func RemoveContext(ctx context.Context, id domain.ID) error {
	c, err := FromContext(ctx)
	if err != nil {
		return err
	}
	return c.Remove(id)
}
