package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cristianoliveira/toastbox/internal/colors"
	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/history"
)

const (
	entryTimeLayout   = "2006-01-02 15:04:05"
	simpleMessageSize = 50
)

// SimpleFormatter formats entries one per line.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatEntries formats entries in simple format.
func (f *SimpleFormatter) FormatEntries(entries []history.Entry, writer io.Writer) error {
	for _, e := range entries {
		_, err := fmt.Fprintf(writer, "%s  %-7s  %-7s  - %s\n",
			e.At.Local().Format(entryTimeLayout), e.Event, e.Severity,
			truncate(e.Message, simpleMessageSize))
		if err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats entries as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonEntry struct {
	Seq        int64  `json:"seq"`
	Event      string `json:"event"`
	ID         string `json:"id"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	DurationMs int64  `json:"duration_ms"`
	At         string `json:"at"`
}

// FormatEntries formats entries as a JSON array.
func (f *JSONFormatter) FormatEntries(entries []history.Entry, writer io.Writer) error {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, jsonEntry{
			Seq:        e.Seq,
			Event:      string(e.Event),
			ID:         e.ID.String(),
			Severity:   e.Severity.String(),
			Message:    e.Message,
			DurationMs: e.DurationMs,
			At:         e.At.UTC().Format(time.RFC3339Nano),
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	if _, err = writer.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(writer)
	return err
}

// NotificationLine renders a live notification for plain terminal output,
// e.g. "[error] Save failed (5s)". Sticky notifications are marked as such.
func NotificationLine(n domain.Notification, color bool) string {
	lifetime := "sticky"
	if !n.Sticky() {
		lifetime = n.Duration.String()
	}
	tag := "[" + n.Severity.String() + "]"
	if color {
		tag = colors.ForSeverity(n.Severity.String()) + tag + colors.Reset
	}
	return fmt.Sprintf("%s %s (%s)", tag, n.Message, lifetime)
}

// DismissedLine renders the removal of a live notification.
func DismissedLine(n domain.Notification) string {
	return fmt.Sprintf("[%s] dismissed: %s", n.Severity, n.Message)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width < 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
