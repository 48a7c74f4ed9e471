package center

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cristianoliveira/toastbox/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingObserver struct {
	mu      sync.Mutex
	shown   []domain.ID
	removed []domain.ID
}

func (r *recordingObserver) Shown(n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, n.ID)
}

func (r *recordingObserver) Removed(n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, n.ID)
}

func ids(t *testing.T, c *Center) []domain.ID {
	t.Helper()
	list, err := c.List()
	require.NoError(t, err)
	out := make([]domain.ID, 0, len(list))
	for _, n := range list {
		out = append(out, n.ID)
	}
	return out
}

func TestShowIDsAreUniqueInATightLoop(t *testing.T) {
	c := New()

	seen := make(map[domain.ID]bool)
	for i := 0; i < 100; i++ {
		id, err := c.ShowInfo(fmt.Sprintf("n%d", i))
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	assert.Len(t, seen, 100)
	assert.Equal(t, 100, c.Len())
}

func TestShowIDsAreUniqueWithFrozenClock(t *testing.T) {
	frozen := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(WithClock(func() time.Time { return frozen }))

	a, err := c.ShowError("a")
	require.NoError(t, err)
	b, err := c.ShowError("b")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOrderIsPreservedOnRemoval(t *testing.T) {
	c := New()

	a, _ := c.ShowInfo("A")
	b, _ := c.ShowInfo("B")
	cc, _ := c.ShowInfo("C")
	require.Equal(t, []domain.ID{a, b, cc}, ids(t, c))

	require.NoError(t, c.Remove(b))
	assert.Equal(t, []domain.ID{a, cc}, ids(t, c))
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := New()
	a, _ := c.ShowSuccess("A")
	b, _ := c.ShowSuccess("B")

	require.NoError(t, c.Remove(a))
	before := ids(t, c)

	require.NoError(t, c.Remove(a))
	require.NoError(t, c.Remove("never-issued"))
	assert.Equal(t, before, ids(t, c))
	assert.Equal(t, []domain.ID{b}, before)
}

func TestDefaultDurations(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		show func(string, ...ShowOption) (domain.ID, error)
		sev  domain.Severity
		want int64
	}{
		{name: "success", show: c.ShowSuccess, sev: domain.SeveritySuccess, want: 3000},
		{name: "info", show: c.ShowInfo, sev: domain.SeverityInfo, want: 4000},
		{name: "warning", show: c.ShowWarning, sev: domain.SeverityWarning, want: 4000},
		{name: "error", show: c.ShowError, sev: domain.SeverityError, want: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.show("x")
			require.NoError(t, err)
			n, ok := c.Get(id)
			require.True(t, ok)
			assert.Equal(t, tt.want, n.DurationMs())
			assert.Equal(t, tt.sev, n.Severity)
		})
	}
}

func TestDurationOverride(t *testing.T) {
	c := New()

	id, err := c.Show("x", domain.SeverityInfo, WithDuration(9999*time.Millisecond))
	require.NoError(t, err)
	n, _ := c.Get(id)
	assert.Equal(t, int64(9999), n.DurationMs())

	id, err = c.ShowWarning("sticky", WithDuration(0))
	require.NoError(t, err)
	n, _ = c.Get(id)
	assert.True(t, n.Sticky())
}

func TestConfiguredDurations(t *testing.T) {
	c := New(WithDurations(domain.Durations{domain.SeverityInfo: time.Second}))

	id, err := c.ShowInfo("x")
	require.NoError(t, err)
	n, _ := c.Get(id)
	assert.Equal(t, time.Second, n.Duration)

	id, err = c.ShowError("y")
	require.NoError(t, err)
	n, _ = c.Get(id)
	assert.Equal(t, 5*time.Second, n.Duration)
}

func TestShowRejectsInvalidArguments(t *testing.T) {
	c := New()

	_, err := c.Show("x", domain.Severity("critical"))
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = c.ShowInfo("x", WithDuration(-time.Second))
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.Equal(t, 0, c.Len())
}

func TestShowAcceptsEmptyMessage(t *testing.T) {
	c := New()

	id, err := c.ShowInfo("")
	require.NoError(t, err)
	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, "", n.Message)
}

func TestScenarioShowErrorThenRemove(t *testing.T) {
	c := New()

	id1, err := c.ShowError("Save failed")
	require.NoError(t, err)

	list, err := c.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.SeverityError, list[0].Severity)
	assert.Equal(t, "Save failed", list[0].Message)
	assert.Equal(t, int64(5000), list[0].DurationMs())

	require.NoError(t, c.Remove(id1))
	assert.Equal(t, 0, c.Len())
}

func TestScenarioMixedSeverities(t *testing.T) {
	c := New()

	id1, _ := c.ShowSuccess("Saved")
	id2, _ := c.ShowInfo("Syncing")
	require.Equal(t, []domain.ID{id1, id2}, ids(t, c))

	require.NoError(t, c.Remove(id1))
	assert.Equal(t, []domain.ID{id2}, ids(t, c))
}

func TestNilCenterIsUnavailable(t *testing.T) {
	var c *Center

	_, err := c.ShowError("x")
	require.ErrorIs(t, err, domain.ErrContextUnavailable)
	_, err = c.ShowSuccess("x")
	require.ErrorIs(t, err, domain.ErrContextUnavailable)
	_, err = c.ShowInfo("x")
	require.ErrorIs(t, err, domain.ErrContextUnavailable)
	_, err = c.ShowWarning("x")
	require.ErrorIs(t, err, domain.ErrContextUnavailable)
	require.ErrorIs(t, c.Remove("x"), domain.ErrContextUnavailable)
	_, err = c.List()
	require.ErrorIs(t, err, domain.ErrContextUnavailable)
	_, err = c.Subscribe(context.Background())
	require.ErrorIs(t, err, domain.ErrContextUnavailable)
	_, err = c.Clear()
	require.ErrorIs(t, err, domain.ErrContextUnavailable)
	assert.Equal(t, 0, c.Len())
	assert.NoError(t, c.Close())
}

func TestContextAccess(t *testing.T) {
	_, err := ShowErrorContext(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrContextUnavailable)
	require.ErrorIs(t, RemoveContext(context.Background(), "x"), domain.ErrContextUnavailable)

	c := New()
	ctx := WithCenter(context.Background(), c)

	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, c, got)

	id, err := ShowSuccessContext(ctx, "ok")
	require.NoError(t, err)
	_, err = ShowInfoContext(ctx, "info")
	require.NoError(t, err)
	_, err = ShowWarningContext(ctx, "warn")
	require.NoError(t, err)
	require.NoError(t, RemoveContext(ctx, id))
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Close())
	_, err = FromContext(ctx)
	require.ErrorIs(t, err, domain.ErrContextUnavailable)
}

func TestCloseDiscardsWithoutRemoveCallbacks(t *testing.T) {
	obs := &recordingObserver{}
	c := New(WithObserver(obs))

	_, _ = c.ShowInfo("a")
	_, _ = c.ShowInfo("b")
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	assert.Len(t, obs.shown, 2)
	assert.Empty(t, obs.removed)
	_, err := c.ShowInfo("late")
	require.ErrorIs(t, err, domain.ErrContextUnavailable)
	require.ErrorIs(t, c.Remove("late"), domain.ErrContextUnavailable)
	assert.Equal(t, 0, c.Len())
}

func TestObserverSeesShowAndRemove(t *testing.T) {
	obs := &recordingObserver{}
	c := New(WithObserver(obs))

	a, _ := c.ShowInfo("a")
	b, _ := c.ShowInfo("b")
	require.NoError(t, c.Remove(a))
	require.NoError(t, c.Remove(a))

	assert.Equal(t, []domain.ID{a, b}, obs.shown)
	assert.Equal(t, []domain.ID{a}, obs.removed)
}

func TestClear(t *testing.T) {
	obs := &recordingObserver{}
	c := New(WithObserver(obs))

	a, _ := c.ShowInfo("a")
	b, _ := c.ShowInfo("b")

	n, err := c.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, []domain.ID{a, b}, obs.removed)

	n, err = c.Clear()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRecordsAreCopies(t *testing.T) {
	c := New()
	_, _ = c.ShowInfo("original")

	list, err := c.List()
	require.NoError(t, err)
	list[0].Message = "mutated"

	again, err := c.List()
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Message)
}

func TestSubscribeReceivesCurrentAndLatest(t *testing.T) {
	c := New()
	defer c.Close()
	_, _ = c.ShowInfo("before")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := c.Subscribe(ctx)
	require.NoError(t, err)

	first := <-ch
	require.Len(t, first.Notifications, 1)

	_, _ = c.ShowInfo("one")
	_, _ = c.ShowInfo("two")
	id3, _ := c.ShowInfo("three")
	require.NoError(t, c.Remove(id3))

	latest := <-ch
	assert.Len(t, latest.Notifications, 3)
	assert.Greater(t, latest.Version, first.Version)

	select {
	case extra := <-ch:
		t.Fatalf("expected no pending snapshot, got version %d", extra.Version)
	default:
	}
}

func TestSubscriptionEndsWithContext(t *testing.T) {
	c := New()
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := c.Subscribe(ctx)
	require.NoError(t, err)
	<-ch

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-ch
		return !ok
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, c.Subscribers())
}

func TestCloseClosesSubscriptions(t *testing.T) {
	c := New()
	ch, err := c.Subscribe(context.Background())
	require.NoError(t, err)
	<-ch

	tctx, tcancel := context.WithCancel(context.Background())
	t.Cleanup(tcancel)
	ctxCh, err := c.Subscribe(tctx)
	require.NoError(t, err)
	<-ctxCh

	require.NoError(t, c.Close())

	_, ok := <-ch
	assert.False(t, ok)
	_, ok = <-ctxCh
	assert.False(t, ok)

	_, err = c.Subscribe(context.Background())
	require.ErrorIs(t, err, domain.ErrContextUnavailable)
}

func TestConcurrentProducers(t *testing.T) {
	c := New()
	defer c.Close()

	const producers, perProducer = 8, 50
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				id, err := c.ShowInfo("x")
				if err != nil {
					t.Error(err)
					return
				}
				if i%2 == 0 {
					_ = c.Remove(id)
				}
			}
		}()
	}
	wg.Wait()

	list, err := c.List()
	require.NoError(t, err)
	assert.Len(t, list, producers*perProducer/2)

	seen := make(map[domain.ID]bool)
	for _, n := range list {
		require.False(t, seen[n.ID])
		seen[n.ID] = true
	}
}

func TestCustomIDGenerator(t *testing.T) {
	n := 0
	c := New(WithIDGenerator(func(time.Time) domain.ID {
		n++
		return domain.ID(fmt.Sprintf("id-%d", n))
	}))

	id, err := c.ShowInfo("x")
	require.NoError(t, err)
	assert.Equal(t, domain.ID("id-1"), id)
}

type slowObserver struct {
	started chan struct{}
	release chan struct{}
	done    chan struct{}
}

func (o *slowObserver) Shown(domain.Notification) {}

func (o *slowObserver) Removed(domain.Notification) {
	close(o.started)
	<-o.release
	close(o.done)
}

func TestCloseWaitsForInFlightObservers(t *testing.T) {
	obs := &slowObserver{started: make(chan struct{}), release: make(chan struct{}), done: make(chan struct{})}
	c := New(WithObserver(obs))
	id, err := c.ShowInfo("a")
	require.NoError(t, err)

	go func() { _ = c.Remove(id) }()
	<-obs.started

	closed := make(chan struct{})
	go func() {
		_ = c.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while an observer was still running")
	case <-time.After(20 * time.Millisecond):
	}
	close(obs.release)
	<-closed
	select {
	case <-obs.done:
	default:
		t.Fatal("observer did not finish before Close returned")
	}
}

// orderObserver logs events when a callback finishes. Shown is slow so a
// concurrent Remove would overtake it without ordered delivery.
type orderObserver struct {
	mu      sync.Mutex
	events  []string
	shownIn chan struct{}
}

func (o *orderObserver) Shown(n domain.Notification) {
	close(o.shownIn)
	time.Sleep(30 * time.Millisecond)
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, "shown "+n.Message)
}

func (o *orderObserver) Removed(n domain.Notification) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, "removed "+n.Message)
}

func TestObserversSeeMutationsInOrderAcrossGoroutines(t *testing.T) {
	obs := &orderObserver{shownIn: make(chan struct{})}
	c := New(WithObserver(obs))

	showed := make(chan domain.ID, 1)
	go func() {
		id, err := c.ShowInfo("a")
		assert.NoError(t, err)
		showed <- id
	}()

	<-obs.shownIn
	list, err := c.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, c.Remove(list[0].ID))

	<-showed
	require.NoError(t, c.Close())
	assert.Equal(t, []string{"shown a", "removed a"}, obs.events)
}

type panickingObserver struct{}

func (panickingObserver) Shown(domain.Notification)   { panic("boom") }
func (panickingObserver) Removed(domain.Notification) {}

func TestPanickingObserverDoesNotStallDelivery(t *testing.T) {
	obs := &recordingObserver{}
	c := New(WithObserver(panickingObserver{}), WithObserver(obs))
	defer c.Close()

	id, err := c.ShowInfo("a")
	require.NoError(t, err)
	require.NoError(t, c.Remove(id))

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Empty(t, obs.shown, "later observers are skipped for the panicking event")
	assert.Equal(t, []domain.ID{id}, obs.removed)
}
