// Package history provides a SQLite-backed journal of notification events.
//
// The journal is an audit trail of what was shown and removed. It is never
// used to repopulate a notification center.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cristianoliveira/toastbox/internal/domain"
)

// ErrInvalidEntry indicates an entry that cannot be journaled.
var ErrInvalidEntry = errors.New("invalid history entry")

// Event is the kind of journaled transition.
type Event string

const (
	EventShown   Event = "shown"
	EventRemoved Event = "removed"
)

// IsValid checks if the event is known.
func (e Event) IsValid() bool {
	return e == EventShown || e == EventRemoved
}

// Entry is one journaled event.
type Entry struct {
	Seq        int64
	Event      Event
	ID         domain.ID
	Severity   domain.Severity
	Message    string
	DurationMs int64
	At         time.Time
}

// Filter narrows List results. Zero values mean "any".
type Filter struct {
	Event    Event
	Severity domain.Severity
	Limit    int
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	seq             INTEGER PRIMARY KEY AUTOINCREMENT,
	event           TEXT NOT NULL CHECK (event IN ('shown', 'removed')),
	notification_id TEXT NOT NULL,
	severity        TEXT NOT NULL CHECK (severity IN ('error', 'success', 'info', 'warning')),
	message         TEXT NOT NULL,
	duration_ms     INTEGER NOT NULL DEFAULT 0,
	at              TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_at ON events(at);
CREATE INDEX IF NOT EXISTS idx_events_notification ON events(notification_id);
`

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is the SQLite journal.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history: db path cannot be empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("history: create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and
	// serializes writers from observer callbacks.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("history: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends an entry. A zero At is set to the current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if !e.Event.IsValid() {
		return fmt.Errorf("history: record: %w: event %q", ErrInvalidEntry, e.Event)
	}
	if !e.Severity.IsValid() {
		return fmt.Errorf("history: record: %w: severity %q", ErrInvalidEntry, e.Severity)
	}
	if e.ID == "" {
		return fmt.Errorf("history: record: %w: empty notification id", ErrInvalidEntry)
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (event, notification_id, severity, message, duration_ms, at) VALUES (?, ?, ?, ?, ?, ?)`,
		string(e.Event), string(e.ID), string(e.Severity), e.Message, e.DurationMs, e.At.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("history: record: %w", err)
	}
	return nil
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if f.Event != "" {
		where = append(where, "event = ?")
		args = append(args, string(f.Event))
	}
	if f.Severity != "" {
		where = append(where, "severity = ?")
		args = append(args, string(f.Severity))
	}

	query := `SELECT seq, event, notification_id, severity, message, duration_ms, at FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e                  Entry
			event, id, sev, at string
		)
		if err := rows.Scan(&e.Seq, &event, &id, &sev, &e.Message, &e.DurationMs, &at); err != nil {
			return nil, fmt.Errorf("history: list: scan: %w", err)
		}
		e.Event = Event(event)
		e.ID = domain.ID(id)
		e.Severity = domain.Severity(sev)
		if e.At, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("history: list: parse time %q: %w", at, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	return out, nil
}

// Count returns the number of journaled entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return n, nil
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events`)
	if err != nil {
		return 0, fmt.Errorf("history: clear: %w", err)
	}
	return res.RowsAffected()
}

// Prune deletes entries recorded before cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE at < ?`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("history: prune: %w", err)
	}
	return res.RowsAffected()
}
