package search

import (
	"strings"

	"github.com/cristianoliveira/toastbox/internal/history"
)

// TokenProvider splits the query into whitespace-separated tokens.
// Each token must match at least one field (AND logic).
// Special tokens: "sticky" (entries with no auto-dismiss) and "timed".
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{opts: applyOptions(opts)}
}

// Match returns true if every text token matches at least one field and
// the entry passes the sticky/timed filter if given.
func (p *TokenProvider) Match(entry history.Entry, query string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return true
	}

	sticky, timed := false, false
	textTokens := make([]string, 0, len(tokens))
	for _, token := range tokens {
		switch strings.ToLower(token) {
		case "sticky":
			sticky = true
		case "timed":
			timed = true
		default:
			if p.opts.CaseInsensitive {
				token = strings.ToLower(token)
			}
			textTokens = append(textTokens, token)
		}
	}

	// Both together cancel out.
	if sticky != timed {
		if sticky && entry.DurationMs != 0 {
			return false
		}
		if timed && entry.DurationMs == 0 {
			return false
		}
	}

	for _, token := range textTokens {
		if !p.matchToken(entry, token) {
			return false
		}
	}
	return true
}

func (p *TokenProvider) matchToken(entry history.Entry, token string) bool {
	for _, field := range p.opts.Fields {
		value := fieldValue(entry, field)
		if value == "" {
			continue
		}
		if p.opts.CaseInsensitive {
			value = strings.ToLower(value)
		}
		if strings.Contains(value, token) {
			return true
		}
	}
	return false
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return KindToken
}
