package format

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/history"
)

func TestTemplateFormatterPresetAndLiteral(t *testing.T) {
	entries := []history.Entry{
		{Seq: 2, Event: history.EventRemoved, ID: "b", Severity: domain.SeverityInfo, Message: "Synced", DurationMs: 4000, At: time.Unix(0, 0)},
		{Seq: 1, Event: history.EventShown, ID: "a", Severity: domain.SeverityError, Message: "Save failed", At: time.Unix(0, 0)},
	}

	f, err := NewTemplateFormatter("compact")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, f.FormatEntries(entries, &buf))
	require.Equal(t, "[info] Synced\n[error] Save failed\n", buf.String())

	f, err = NewTemplateFormatter("{{seq}}:{{event}}:{{duration}}")
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, f.FormatEntries(entries, &buf))
	require.Equal(t, "2:removed:4s\n1:shown:sticky\n", buf.String())
}

func TestTemplateFormatterRejectsBadTemplates(t *testing.T) {
	_, err := NewTemplateFormatter("{{unread-count}}")
	require.Error(t, err)

	_, err = NewTemplateFormatter("")
	require.Error(t, err)
}
