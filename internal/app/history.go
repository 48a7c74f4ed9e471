package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/format"
	"github.com/cristianoliveira/toastbox/internal/history"
	"github.com/cristianoliveira/toastbox/internal/search"
)

// HistoryStore is the journal surface the history commands need.
type HistoryStore interface {
	List(ctx context.Context, f history.Filter) ([]history.Entry, error)
	Clear(ctx context.Context) (int64, error)
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
	Close() error
}

// HistoryClient opens the journal.
type HistoryClient interface {
	OpenHistory() (HistoryStore, error)
}

// HistoryListInput represents history list inputs after flag parsing.
type HistoryListInput struct {
	Limit    int
	Severity string
	Event    string
	Format   string
	// Template is a preset name or a {{variable}} line template. It takes
	// precedence over Format.
	Template string
	// Search keeps entries whose message or id match. SearchMode picks
	// token (default), substring or regex matching.
	Search     string
	SearchMode string
	IgnoreCase bool
}

// HistoryUseCase coordinates journal listing and cleanup.
type HistoryUseCase struct {
	client HistoryClient
	now    func() time.Time
}

// NewHistoryUseCase creates a new history use-case.
func NewHistoryUseCase(client HistoryClient) *HistoryUseCase {
	if client == nil {
		panic("NewHistoryUseCase: client dependency cannot be nil")
	}
	return &HistoryUseCase{client: client, now: time.Now}
}

// List writes journal entries, newest first, in the requested format.
func (u *HistoryUseCase) List(ctx context.Context, input HistoryListInput, w io.Writer) error {
	filter, err := buildFilter(input)
	if err != nil {
		return fmt.Errorf("history list: %w", err)
	}
	formatName := strings.ToLower(strings.TrimSpace(input.Format))
	var out format.Formatter
	if input.Template != "" {
		tf, err := format.NewTemplateFormatter(input.Template)
		if err != nil {
			return fmt.Errorf("history list: %w: %v", domain.ErrInvalidArgument, err)
		}
		out = tf
	} else if formatName != "" && !isFormatterType(formatName) {
		return fmt.Errorf("history list: %w: unknown format %q", domain.ErrInvalidArgument, input.Format)
	}

	provider, err := buildProvider(input)
	if err != nil {
		return fmt.Errorf("history list: %w", err)
	}
	limit := filter.Limit
	if provider != nil {
		filter.Limit = 0
	}

	store, err := u.client.OpenHistory()
	if err != nil {
		return fmt.Errorf("history list: %w", err)
	}
	defer store.Close()

	entries, err := store.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("history list: %w", err)
	}
	if provider != nil {
		entries = search.Filter(entries, provider, input.Search)
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
	}
	if out != nil {
		return out.FormatEntries(entries, w)
	}
	if len(entries) == 0 && format.FormatterType(formatName) != format.FormatterTypeJSON {
		_, err := fmt.Fprintln(w, "No history entries")
		return err
	}
	if formatName == "" {
		formatName = string(format.FormatterTypeTable)
	}
	return format.GetFormatter(formatName).FormatEntries(entries, w)
}

// Clear deletes journal entries. A positive olderThan keeps entries newer
// than that age; zero deletes everything.
func (u *HistoryUseCase) Clear(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan < 0 {
		return 0, fmt.Errorf("history clear: %w: --older-than must be non-negative", domain.ErrInvalidArgument)
	}
	store, err := u.client.OpenHistory()
	if err != nil {
		return 0, fmt.Errorf("history clear: %w", err)
	}
	defer store.Close()

	var n int64
	if olderThan == 0 {
		n, err = store.Clear(ctx)
	} else {
		n, err = store.Prune(ctx, u.now().Add(-olderThan))
	}
	if err != nil {
		return 0, fmt.Errorf("history clear: %w", err)
	}
	return n, nil
}

func buildFilter(input HistoryListInput) (history.Filter, error) {
	var f history.Filter
	if input.Limit < 0 {
		return f, fmt.Errorf("%w: --limit must be non-negative", domain.ErrInvalidArgument)
	}
	f.Limit = input.Limit
	if strings.TrimSpace(input.Severity) != "" {
		s, err := domain.ParseSeverity(input.Severity)
		if err != nil {
			return f, err
		}
		f.Severity = s
	}
	if ev := history.Event(strings.ToLower(strings.TrimSpace(input.Event))); ev != "" {
		if !ev.IsValid() {
			return f, fmt.Errorf("%w: unknown event %q (want shown or removed)", domain.ErrInvalidArgument, input.Event)
		}
		f.Event = ev
	}
	return f, nil
}

func buildProvider(input HistoryListInput) (search.Provider, error) {
	if strings.TrimSpace(input.Search) == "" {
		return nil, nil
	}
	p, err := search.New(input.SearchMode, search.WithCaseInsensitive(input.IgnoreCase))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	if re, ok := p.(*search.RegexProvider); ok {
		if _, err := re.Compile(input.Search); err != nil {
			return nil, fmt.Errorf("%w: invalid --search pattern: %v", domain.ErrInvalidArgument, err)
		}
	}
	return p, nil
}

func isFormatterType(name string) bool {
	for _, t := range format.FormatterTypes() {
		if string(t) == name {
			return true
		}
	}
	return false
}
