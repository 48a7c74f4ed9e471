// Package search provides a unified search abstraction for filtering journal
// entries. It supports multiple search strategies (substring, regex,
// token-based) through a common Provider interface.
package search

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/toastbox/internal/history"
)

// Provider defines the interface for search providers.
type Provider interface {
	// Match returns true if the entry matches the search query.
	Match(entry history.Entry, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Searchable fields.
const (
	FieldMessage  = "message"
	FieldID       = "id"
	FieldSeverity = "severity"
	FieldEvent    = "event"
)

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: false,
		Fields:          []string{FieldMessage, FieldID},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValue returns the searchable text of field for e.
func fieldValue(e history.Entry, field string) string {
	switch field {
	case FieldMessage:
		return e.Message
	case FieldID:
		return e.ID.String()
	case FieldSeverity:
		return e.Severity.String()
	case FieldEvent:
		return string(e.Event)
	default:
		return ""
	}
}

// Provider kinds accepted by New.
const (
	KindSubstring = "substring"
	KindRegex     = "regex"
	KindToken     = "token"
)

// New returns the provider for kind.
func New(kind string, opts ...Option) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindToken:
		return NewTokenProvider(opts...), nil
	case KindSubstring:
		return NewSubstringProvider(opts...), nil
	case KindRegex:
		return NewRegexProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", kind)
	}
}

// Filter returns the entries of in that match query, preserving order.
func Filter(in []history.Entry, p Provider, query string) []history.Entry {
	if query == "" || p == nil {
		return in
	}
	out := make([]history.Entry, 0, len(in))
	for _, e := range in {
		if p.Match(e, query) {
			out = append(out, e)
		}
	}
	return out
}
