// Package state provides the bubbletea model for the toast stack.
package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/toastbox/internal/center"
	"github.com/cristianoliveira/toastbox/internal/domain"
)

const refreshInterval = time.Second

// SnapshotMsg carries the latest collection published by the center.
type SnapshotMsg center.Snapshot

// SubscriptionClosedMsg is sent when the center stops publishing, either
// because it was closed or the model cancelled its subscription.
type SubscriptionClosedMsg struct{}

// ExpiredMsg is sent when a toast's auto-dismiss delay has elapsed.
type ExpiredMsg struct {
	ID domain.ID
}

// refreshMsg redraws remaining lifetimes.
type refreshMsg time.Time

func waitForSnapshot(ch <-chan center.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return SubscriptionClosedMsg{}
		}
		return SnapshotMsg(snap)
	}
}

func expireAfter(id domain.ID, d time.Duration) tea.Cmd {
	if d < 0 {
		d = 0
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ExpiredMsg{ID: id}
	})
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}
