// Package scheduler owns the auto-dismiss timers for a headless
// presentation layer. Each tracked notification gets its own timer that
// calls Remove on expiry; the notification center itself stays timer-free.
package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/cristianoliveira/toastbox/internal/center"
	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/logging"
)

// Remover removes a notification by id. *center.Center satisfies it.
type Remover interface {
	Remove(id domain.ID) error
}

// Timer is the subset of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// AfterFunc arms a timer. It matches time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// Scheduler tracks one dismissal timer per notification.
type Scheduler struct {
	mu       sync.Mutex
	remover  Remover
	timers   map[domain.ID]Timer
	stopped  bool
	after    AfterFunc
	logger   logging.Logger
	onExpire func(domain.ID)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.after = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// OnExpire registers a callback run after an expired notification was removed.
func OnExpire(fn func(domain.ID)) Option {
	return func(s *Scheduler) {
		s.onExpire = fn
	}
}

// New creates a Scheduler that removes expired notifications through r.
func New(r Remover, opts ...Option) *Scheduler {
	s := &Scheduler{
		remover: r,
		timers:  make(map[domain.ID]Timer),
		after: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "scheduler")
	return s
}

// Track arms the dismissal timer for n. Sticky notifications and ids that
// are already tracked are ignored. It reports whether a timer was armed.
func (s *Scheduler) Track(n domain.Notification) bool {
	if n.Sticky() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	if _, ok := s.timers[n.ID]; ok {
		return false
	}
	id := n.ID
	s.timers[id] = s.after(n.Duration, func() { s.expire(id) })
	return true
}

func (s *Scheduler) expire(id domain.ID) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if _, ok := s.timers[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)
	s.mu.Unlock()

	if err := s.remover.Remove(id); err != nil {
		// A torn-down center is expected during shutdown races.
		if !errors.Is(err, domain.ErrContextUnavailable) {
			s.logger.Warn("auto-dismiss failed", "id", id, "error", err)
		}
		return
	}
	s.logger.Debug("auto-dismissed", "id", id)
	if s.onExpire != nil {
		s.onExpire(id)
	}
}

// Cancel stops the timer for id without removing the notification.
func (s *Scheduler) Cancel(id domain.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	t.Stop()
	delete(s.timers, id)
	return true
}

// Dismiss cancels the timer for id and removes the notification now.
func (s *Scheduler) Dismiss(id domain.ID) error {
	s.Cancel(id)
	return s.remover.Remove(id)
}

// Sync reconciles timers with a snapshot: new records are tracked and
// timers for records that are no longer live are cancelled.
func (s *Scheduler) Sync(snap center.Snapshot) {
	live := make(map[domain.ID]struct{}, len(snap.Notifications))
	for _, n := range snap.Notifications {
		live[n.ID] = struct{}{}
		s.Track(n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		if _, ok := live[id]; !ok {
			t.Stop()
			delete(s.timers, id)
		}
	}
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending timer. No removal callback runs afterwards.
// It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
