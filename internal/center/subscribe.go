package center

import (
	"context"
	"sync"

	"github.com/cristianoliveira/toastbox/internal/domain"
)

// subscription holds at most one pending snapshot. A newer snapshot
// replaces an unread one, so readers always converge on the latest state
// and publishing never blocks on a slow reader.
type subscription struct {
	mu     sync.Mutex
	ch     chan Snapshot
	done   chan struct{}
	closed bool
}

func newSubscription() *subscription {
	return &subscription{
		ch:   make(chan Snapshot, 1),
		done: make(chan struct{}),
	}
}

func (s *subscription) offer(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case <-s.ch:
	default:
	}
	// Only offer sends and it holds mu, so the buffer has room here.
	s.ch <- snap
}

func (s *subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
	close(s.done)
}

// Subscribe returns a channel that receives the current snapshot right
// away and a fresh snapshot after every mutation. Intermediate snapshots
// may be skipped by a slow reader; the latest one is always delivered.
// The channel is closed when ctx is done or the center is closed.
func (c *Center) Subscribe(ctx context.Context) (<-chan Snapshot, error) {
	if c == nil {
		return nil, domain.ErrContextUnavailable
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, domain.ErrContextUnavailable
	}

	sub := newSubscription()
	sub.offer(c.snapshotLocked())
	c.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			select {
			case <-ctx.Done():
				c.unsubscribe(sub)
			case <-sub.done:
			}
		}()
	}
	return sub.ch, nil
}

func (c *Center) unsubscribe(sub *subscription) {
	c.mu.Lock()
	delete(c.subscribers, sub)
	c.mu.Unlock()
	sub.close()
}

// Subscribers returns the number of active subscriptions.
func (c *Center) Subscribers() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subscribers)
}
