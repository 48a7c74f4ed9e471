// Package domain provides the domain layer for notifications.
// It contains the notification record, severity value objects, and
// the per-severity default durations.
package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidArgument indicates an unknown severity or a negative duration.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrContextUnavailable indicates the notification center was used
	// before it was initialized or after it was torn down.
	ErrContextUnavailable = errors.New("notification center unavailable")
)

// ID identifies a live notification.
type ID string

// String returns the string representation of the id.
func (id ID) String() string {
	return string(id)
}

// Severity represents the classification of a notification.
type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Severities returns the closed set of severities in display order.
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeveritySuccess, SeverityInfo}
}

// IsValid checks if the severity is part of the closed set.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeveritySuccess, SeverityInfo, SeverityWarning:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a string into a Severity.
// Surrounding whitespace and letter case are ignored.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !sev.IsValid() {
		return "", fmt.Errorf("%w: unknown severity %q", ErrInvalidArgument, s)
	}
	return sev, nil
}

// Notification is a single immutable notification record.
type Notification struct {
	ID        ID
	Message   string
	Severity  Severity
	Duration  time.Duration
	CreatedAt time.Time
}

// DurationMs returns the auto-dismiss delay in whole milliseconds.
func (n Notification) DurationMs() int64 {
	return n.Duration.Milliseconds()
}

// Sticky reports whether the notification has no auto-dismiss.
func (n Notification) Sticky() bool {
	return n.Duration == 0
}

// ExpiresAt returns when the notification should be dismissed.
// Sticky notifications return the zero time.
func (n Notification) ExpiresAt() time.Time {
	if n.Sticky() {
		return time.Time{}
	}
	return n.CreatedAt.Add(n.Duration)
}

// Durations maps each severity to its default auto-dismiss delay.
type Durations map[Severity]time.Duration

// DefaultDurations returns the built-in default durations.
func DefaultDurations() Durations {
	return Durations{
		SeverityError:   5000 * time.Millisecond,
		SeveritySuccess: 3000 * time.Millisecond,
		SeverityInfo:    4000 * time.Millisecond,
		SeverityWarning: 4000 * time.Millisecond,
	}
}

// For returns the default duration for a severity.
// Missing entries fall back to the built-in defaults.
func (d Durations) For(s Severity) time.Duration {
	if v, ok := d[s]; ok && v >= 0 {
		return v
	}
	return DefaultDurations()[s]
}

// ValidateDuration returns ErrInvalidArgument for negative durations.
func ValidateDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: duration must be non-negative, got %s", ErrInvalidArgument, d)
	}
	return nil
}

// ParseDuration reads a lifetime as a Go duration ("3s", "4500ms") or a
// bare integer of milliseconds. Zero means no auto-dismiss.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		s = strconv.FormatInt(ms, 10) + "ms"
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid duration %q", ErrInvalidArgument, s)
	}
	if err := ValidateDuration(d); err != nil {
		return 0, err
	}
	return d, nil
}

// MaxMessageLength bounds messages typed by a user on the command line or
// in the composer. Programmatic producers are not limited.
const MaxMessageLength = 1000

// ValidateMessage applies the input policy for user-entered messages:
// non-empty after trimming and at most MaxMessageLength characters.
func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("%w: message cannot be empty", ErrInvalidArgument)
	}
	if n := len([]rune(message)); n > MaxMessageLength {
		return fmt.Errorf("%w: message too long (%d characters, max %d)", ErrInvalidArgument, n, MaxMessageLength)
	}
	return nil
}
