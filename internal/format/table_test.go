package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/history"
)

func sampleEntries() []history.Entry {
	at := time.Date(2025, 1, 1, 10, 0, 0, 0, time.Local)
	return []history.Entry{
		{Seq: 2, Event: history.EventRemoved, ID: "b", Severity: domain.SeverityWarning, Message: "this is a very long message that should be truncated in the table", DurationMs: 4000, At: at.Add(time.Hour)},
		{Seq: 1, Event: history.EventShown, ID: "a", Severity: domain.SeverityInfo, Message: "short message", DurationMs: 0, At: at},
	}
}

func TestDefaultTableConfig(t *testing.T) {
	config := DefaultTableConfig()

	assert.True(t, config.ShowHeaders)
	assert.Equal(t, "\x1b[0;34m", config.HeaderColor)
	assert.Equal(t, 19, config.ColumnWidths["Time"])
	assert.Equal(t, 40, config.ColumnWidths["Message"])
	assert.Equal(t, "right", config.ColumnAlignments["Duration"])
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer

	err := NewTableFormatter().FormatEntries(sampleEntries(), &buf)
	assert.NoError(t, err)

	output := buf.String()
	for _, header := range []string{"Time", "Event", "Severity", "Duration", "Message"} {
		assert.Contains(t, output, header)
	}
	assert.Contains(t, output, "2025-01-01 10:00:00")
	assert.Contains(t, output, "removed")
	assert.Contains(t, output, "warning")
	assert.Contains(t, output, "sticky")
	assert.Contains(t, output, "      4s")
	assert.Contains(t, output, "short message")
	assert.Contains(t, output, "this is a very long message that shou...")
	assert.Len(t, strings.Split(strings.TrimSpace(output), "\n"), 4)
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, NewTableFormatter().FormatEntries(nil, &buf))
	assert.Empty(t, buf.String())
}

func TestTableFormatterColorsSeverity(t *testing.T) {
	config := DefaultTableConfig()
	config.HeaderColor = ""
	config.ColorSeverity = true
	var buf bytes.Buffer

	err := NewTableFormatterWithConfig(config).FormatEntries(sampleEntries(), &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\x1b[1;33mwarning ")
	assert.NotContains(t, strings.SplitN(buf.String(), "\n", 2)[0], "\x1b[")
}

func TestTableFormatterWithCustomColumn(t *testing.T) {
	formatter := NewTableFormatter().WithColumns(TableColumn{
		Name:  "ID",
		Width: 4,
		Extractor: func(e *history.Entry) string {
			return formatString(e.ID.String(), 4, "left")
		},
	})
	var buf bytes.Buffer

	assert.NoError(t, formatter.FormatEntries(sampleEntries()[1:], &buf))
	assert.Contains(t, buf.String(), "ID")
	assert.Contains(t, buf.String(), "short message")
}

func TestFormatDurationMs(t *testing.T) {
	assert.Equal(t, "sticky", formatDurationMs(0))
	assert.Equal(t, "5s", formatDurationMs(5000))
	assert.Equal(t, "1500ms", formatDurationMs(1500))
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		width     int
		alignment string
		expected  string
	}{
		{"Left align short", "test", 10, "left", "test      "},
		{"Right align short", "test", 10, "right", "      test"},
		{"Center align short", "test", 10, "center", "   test   "},
		{"Left align long", "very long string", 10, "left", "very long "},
		{"Right align long", "very long string", 10, "right", "very long "},
		{"Default alignment", "test", 10, "invalid", "test      "},
		{"Multibyte", "héllo", 6, "left", "héllo "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatString(tt.input, tt.width, tt.alignment))
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"Short string", "test", 10, "test      "},
		{"Exactly width", "1234567890", 10, "1234567890"},
		{"Truncate", "very long string", 10, "very lo..."},
		{"Truncate small width", "test", 3, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateString(tt.input, tt.width))
		})
	}
}

func TestMakeSeparator(t *testing.T) {
	assert.Equal(t, "----------", makeSeparator(10))
}
