// Package render draws the toast stack and the composer footer.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/cristianoliveira/toastbox/internal/colors"
	"github.com/cristianoliveira/toastbox/internal/domain"
)

const (
	DefaultToastWidth = 50
	minToastWidth     = 16
	stickyLabel       = "pinned"
)

var icons = map[domain.Severity]string{
	domain.SeverityError:   "✗",
	domain.SeverityWarning: "!",
	domain.SeveritySuccess: "✓",
	domain.SeverityInfo:    "i",
}

// ToastState defines the inputs needed to render one toast.
type ToastState struct {
	Notification domain.Notification
	Width        int
	Now          time.Time
}

// StackState defines the inputs needed to render the toast stack.
type StackState struct {
	Notifications []domain.Notification
	Width         int
	Now           time.Time
}

// ComposerState defines the inputs needed to render the composer line.
type ComposerState struct {
	Severity domain.Severity
	Input    string
	Help     string
}

// SeverityColor maps a severity to the lipgloss color of its console color.
func SeverityColor(s domain.Severity) lipgloss.Color {
	return lipgloss.Color(ansiColorNumber(colors.ForSeverity(s.String())))
}

func toastStyle(s domain.Severity, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SeverityColor(s)).
		Padding(0, 1).
		Width(width - 2)
}

// Toast renders a single toast: icon, message and remaining lifetime.
func Toast(state ToastState) string {
	width := state.Width
	if width < minToastWidth {
		width = minToastWidth
	}
	n := state.Notification

	label := stickyLabel
	if !n.Sticky() {
		label = Remaining(n, state.Now)
	}
	icon := lipgloss.NewStyle().Bold(true).Foreground(SeverityColor(n.Severity)).Render(icons[n.Severity])
	meta := lipgloss.NewStyle().Faint(true).Render(label)

	// Border and padding take four cells; Width excludes the border.
	inner := width - 4
	msgWidth := inner - lipgloss.Width(icons[n.Severity]) - lipgloss.Width(label) - 2
	msg := truncate(n.Message, msgWidth)
	gap := inner - lipgloss.Width(icons[n.Severity]) - 1 - lipgloss.Width(msg) - lipgloss.Width(label)
	if gap < 1 {
		gap = 1
	}
	content := icon + " " + msg + strings.Repeat(" ", gap) + meta
	return toastStyle(n.Severity, width).Render(content)
}

// Stack renders the toasts oldest first, newest at the bottom.
func Stack(state StackState) string {
	if len(state.Notifications) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("No notifications")
	}
	rendered := make([]string, 0, len(state.Notifications))
	for _, n := range state.Notifications {
		rendered = append(rendered, Toast(ToastState{Notification: n, Width: state.Width, Now: state.Now}))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// Composer renders the severity badge, the input line and key help.
func Composer(state ComposerState) string {
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(SeverityColor(state.Severity)).
		Padding(0, 1).
		Render(state.Severity.String())

	var s strings.Builder
	s.WriteString(badge)
	s.WriteString(" ")
	s.WriteString(state.Input)
	if state.Help != "" {
		s.WriteString("\n")
		s.WriteString(state.Help)
	}
	return s.String()
}

// Remaining formats the time left before n auto-dismisses, rounded up to
// whole seconds.
func Remaining(n domain.Notification, now time.Time) string {
	left := n.ExpiresAt().Sub(now)
	if left <= 0 {
		return "0s"
	}
	secs := (left + time.Second - 1) / time.Second
	return fmt.Sprintf("%ds", secs)
}

// truncate cuts s to at most width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return ansi.Truncate(s, width, "")
	}
	return ansi.Truncate(s, width, "...")
}

// ansiColorNumber converts a console foreground escape such as "\033[0;31m"
// into the matching basic palette index ("1").
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	code, err := strconv.Atoi(ansi[lastSemicolon+1 : len(ansi)-1])
	if err != nil || code < 30 || code > 37 {
		return ""
	}
	return strconv.Itoa(code - 30)
}
