package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/history"
)

func runShow(t *testing.T, p *runtimeProvider, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	c := NewShowCmd(p)
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}

func TestShowCmdRequiresMessage(t *testing.T) {
	p, _ := newTestProvider(t, nil)

	_, err := runShow(t, p)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	require.Contains(t, err.Error(), "show requires a message")
}

func TestShowCmdRejectsInvalidFlags(t *testing.T) {
	p, _ := newTestProvider(t, nil)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown severity", args: []string{"-s", "critical", "hi"}},
		{name: "negative duration", args: []string{"-d", "-5", "hi"}},
		{name: "blank message", args: []string{"   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runShow(t, p, tt.args...)
			require.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestShowCmdPlainSticky(t *testing.T) {
	p, _ := newTestProvider(t, nil)

	out, err := runShow(t, p, "--plain", "-s", "ERROR", "-d", "0", "Save", "failed")
	require.NoError(t, err)
	require.Equal(t, "[error] Save failed (sticky)\n", out)
}

func TestShowCmdDefaultsToError(t *testing.T) {
	p, _ := newTestProvider(t, nil)

	out, err := runShow(t, p, "--plain", "-d", "0", "Save", "failed")
	require.NoError(t, err)
	require.Equal(t, "[error] Save failed (sticky)\n", out)
}

func TestShowCmdPlainWaitsForDismissal(t *testing.T) {
	p, path := newTestProvider(t, nil)

	out, err := runShow(t, p, "--plain", "-s", "success", "-d", "20", "Saved")
	require.NoError(t, err)
	require.Equal(t, "[success] Saved (20ms)\n[success] dismissed: Saved\n", out)

	store, err := history.Open(path)
	require.NoError(t, err)
	defer store.Close()
	entries, err := store.List(context.Background(), history.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, history.EventRemoved, entries[0].Event)
}

func TestNewShowCmdPanicsWhenClientIsNil(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		msg, ok := r.(string)
		require.True(t, ok)
		require.True(t, strings.Contains(msg, "client dependency cannot be nil"))
	}()

	NewShowCmd(nil)
}
