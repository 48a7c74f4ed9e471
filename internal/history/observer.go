package history

import (
	"context"
	"time"

	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/logging"
)

const writeTimeout = 2 * time.Second

// Recorder is the write side of the journal.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Observer journals center mutations. It implements center.Observer.
// Write failures are logged and never reach producers.
type Observer struct {
	rec    Recorder
	logger logging.Logger
	now    func() time.Time
}

// NewObserver adapts a Recorder to the center's observer hooks.
func NewObserver(rec Recorder, logger logging.Logger) *Observer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Observer{
		rec:    rec,
		logger: logger.With("component", "history"),
		now:    time.Now,
	}
}

// Shown journals a shown notification.
func (o *Observer) Shown(n domain.Notification) {
	o.record(EventShown, n, n.CreatedAt)
}

// Removed journals a removed notification.
func (o *Observer) Removed(n domain.Notification) {
	o.record(EventRemoved, n, o.now())
}

func (o *Observer) record(ev Event, n domain.Notification, at time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	err := o.rec.Record(ctx, Entry{
		Event:      ev,
		ID:         n.ID,
		Severity:   n.Severity,
		Message:    n.Message,
		DurationMs: n.DurationMs(),
		At:         at,
	})
	if err != nil {
		o.logger.Error("journal write failed", "event", ev, "id", n.ID, "error", err)
	}
}
