package history

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/toastbox/internal/center"
	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)

	require.NoError(t, s.Record(ctx, Entry{Event: EventShown, ID: "a", Severity: domain.SeverityError, Message: "Save failed", DurationMs: 5000, At: at}))
	require.NoError(t, s.Record(ctx, Entry{Event: EventRemoved, ID: "a", Severity: domain.SeverityError, Message: "Save failed", DurationMs: 5000, At: at.Add(time.Second)}))

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, EventRemoved, entries[0].Event, "newest first")
	require.Equal(t, EventShown, entries[1].Event)
	require.Equal(t, domain.ID("a"), entries[1].ID)
	require.Equal(t, "Save failed", entries[1].Message)
	require.Equal(t, int64(5000), entries[1].DurationMs)
	require.True(t, at.Equal(entries[1].At))
}

func TestRecordValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		entry Entry
	}{
		{name: "unknown event", entry: Entry{Event: "moved", ID: "a", Severity: domain.SeverityInfo}},
		{name: "unknown severity", entry: Entry{Event: EventShown, ID: "a", Severity: "critical"}},
		{name: "empty id", entry: Entry{Event: EventShown, Severity: domain.SeverityInfo}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Record(ctx, tt.entry)
			require.True(t, errors.Is(err, ErrInvalidEntry), "got %v", err)
		})
	}
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Entry{Event: EventShown, ID: "1", Severity: domain.SeverityInfo, Message: "info"}))
	require.NoError(t, s.Record(ctx, Entry{Event: EventShown, ID: "2", Severity: domain.SeverityWarning, Message: "warn"}))
	require.NoError(t, s.Record(ctx, Entry{Event: EventRemoved, ID: "1", Severity: domain.SeverityInfo, Message: "info"}))

	got, err := s.List(ctx, Filter{Severity: domain.SeverityWarning})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "warn", got[0].Message)

	got, err = s.List(ctx, Filter{Event: EventRemoved})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, domain.ID("1"), got[0].ID)

	got, err = s.List(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, EventRemoved, got[0].Event)
}

func TestCountClearAndPrune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)

	require.NoError(t, s.Record(ctx, Entry{Event: EventShown, ID: "old", Severity: domain.SeverityInfo, At: old}))
	require.NoError(t, s.Record(ctx, Entry{Event: EventShown, ID: "new", Severity: domain.SeverityInfo}))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	pruned, err := s.Prune(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), pruned)

	entries, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, domain.ID("new"), entries[0].ID)

	cleared, err := s.Clear(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), cleared)

	n, err = s.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestInMemoryStore(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Record(context.Background(), Entry{Event: EventShown, ID: "x", Severity: domain.SeveritySuccess}))
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestObserverJournalsCenterMutations(t *testing.T) {
	s := newTestStore(t)
	c := center.New(center.WithObserver(NewObserver(s, nil)))
	defer c.Close()

	id, err := c.ShowError("Save failed")
	require.NoError(t, err)
	require.NoError(t, c.Remove(id))
	require.NoError(t, c.Remove(id))

	entries, err := s.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, EventRemoved, entries[0].Event)
	require.Equal(t, EventShown, entries[1].Event)
	require.Equal(t, id, entries[1].ID)
	require.Equal(t, int64(5000), entries[1].DurationMs)
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, Entry) error {
	return errors.New("disk full")
}

func TestObserverLogsWriteFailures(t *testing.T) {
	var buf bytes.Buffer
	obs := NewObserver(failingRecorder{}, logging.NewWriter(&buf, logging.Config{Level: "info"}))

	obs.Shown(domain.Notification{ID: "a", Severity: domain.SeverityInfo})

	require.Contains(t, buf.String(), "journal write failed")
	require.Contains(t, buf.String(), "disk full")
}
