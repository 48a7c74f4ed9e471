// Package format provides output formatting for CLI commands.
// It renders journaled history entries and live notification lines.
package format

import (
	"io"

	"github.com/cristianoliveira/toastbox/internal/history"
)

// Formatter defines the interface for history output formatters.
type Formatter interface {
	// FormatEntries formats journal entries and writes to the writer.
	FormatEntries(entries []history.Entry, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple displays one entry per line with time, event, and message.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable displays entries in a table format with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON displays entries in JSON format.
	FormatterTypeJSON FormatterType = "json"
)

// FormatterTypes lists the accepted formatter names.
func FormatterTypes() []FormatterType {
	return []FormatterType{FormatterTypeSimple, FormatterTypeTable, FormatterTypeJSON}
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewSimpleFormatter()
	}
}

// GetFormatter resolves a formatter by name, falling back to simple.
func GetFormatter(format string) Formatter {
	return NewFormatter(FormatterType(format))
}
