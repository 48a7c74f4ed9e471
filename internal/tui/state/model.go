package state

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/toastbox/internal/center"
	"github.com/cristianoliveira/toastbox/internal/domain"
	"github.com/cristianoliveira/toastbox/internal/errors"
	"github.com/cristianoliveira/toastbox/internal/logging"
	"github.com/cristianoliveira/toastbox/internal/tui/render"
)

// Options configures a Model.
type Options struct {
	// Center is the notification center to display. Required.
	Center *center.Center
	// ToastWidth is the preferred toast width; the terminal width caps it.
	ToastWidth int
	// Composer enables the message input line.
	Composer bool
	// Severity is the composer's initial severity. Defaults to info.
	Severity domain.Severity
	// ExitWhenEmpty quits once the stack drains after showing something.
	ExitWhenEmpty bool
	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger logging.Logger
	// Now is the clock used for remaining-time labels.
	Now func() time.Time
}

// Model represents the TUI model for bubbletea.
type Model struct {
	center    *center.Center
	opts      Options
	snapshots <-chan center.Snapshot
	cancel    context.CancelFunc

	notifications []domain.Notification
	version       uint64
	armed         map[domain.ID]struct{}
	seen          bool
	refreshing    bool

	input    textinput.Model
	help     help.Model
	keys     keyMap
	severity domain.Severity
	width    int
	quitting bool

	handler errors.ErrorHandler
	logger  logging.Logger
}

// NewModel subscribes to the center and returns a ready model.
func NewModel(opts Options) (*Model, error) {
	if opts.Center == nil {
		return nil, domain.ErrContextUnavailable
	}
	if opts.ToastWidth <= 0 {
		opts.ToastWidth = render.DefaultToastWidth
	}
	if !opts.Severity.IsValid() {
		opts.Severity = domain.SeverityInfo
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := opts.Center.Subscribe(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Type a message"
	input.CharLimit = domain.MaxMessageLength
	if opts.Composer {
		input.Focus()
	}

	c := opts.Center
	logger := opts.Logger.With("component", "tui")
	return &Model{
		center:    c,
		opts:      opts,
		snapshots: ch,
		cancel:    cancel,
		armed:     make(map[domain.ID]struct{}),
		input:     input,
		help:      help.New(),
		keys:      newKeyMap(opts.Composer),
		severity:  opts.Severity,
		width:     opts.ToastWidth,
		handler: errors.NewCenterHandler(errors.ShowerFunc(func(msg string, sev domain.Severity) (domain.ID, error) {
			return c.Show(msg, sev)
		}), nil),
		logger: logger,
	}, nil
}

// Init starts listening for snapshots.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForSnapshot(m.snapshots)}
	if m.opts.Composer {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		return m, m.applySnapshot(center.Snapshot(msg))
	case ExpiredMsg:
		m.expire(msg.ID)
		return m, nil
	case refreshMsg:
		if m.hasTimedToasts() && !m.quitting {
			return m, scheduleRefresh()
		}
		m.refreshing = false
		return m, nil
	case SubscriptionClosedMsg:
		return m, m.quit()
	case tea.WindowSizeMsg:
		m.width = min(m.opts.ToastWidth, msg.Width)
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) applySnapshot(snap center.Snapshot) tea.Cmd {
	if m.quitting {
		return nil
	}
	cmds := []tea.Cmd{waitForSnapshot(m.snapshots)}
	if snap.Version < m.version {
		return tea.Batch(cmds...)
	}
	m.version = snap.Version
	m.notifications = snap.Notifications

	now := m.opts.Now()
	live := make(map[domain.ID]struct{}, len(snap.Notifications))
	for _, n := range snap.Notifications {
		live[n.ID] = struct{}{}
		if n.Sticky() {
			continue
		}
		if _, ok := m.armed[n.ID]; ok {
			continue
		}
		m.armed[n.ID] = struct{}{}
		cmds = append(cmds, expireAfter(n.ID, n.ExpiresAt().Sub(now)))
	}
	for id := range m.armed {
		if _, ok := live[id]; !ok {
			delete(m.armed, id)
		}
	}

	if len(snap.Notifications) > 0 {
		m.seen = true
	}
	if m.opts.ExitWhenEmpty && m.seen && len(snap.Notifications) == 0 {
		return m.quit()
	}
	if !m.refreshing && m.hasTimedToasts() {
		m.refreshing = true
		cmds = append(cmds, scheduleRefresh())
	}
	return tea.Batch(cmds...)
}

// expire removes a toast whose delay elapsed. Ids that are already gone
// are ignored.
func (m *Model) expire(id domain.ID) {
	if _, ok := m.armed[id]; !ok {
		return
	}
	delete(m.armed, id)
	if err := m.center.Remove(id); err != nil && !stderrors.Is(err, domain.ErrContextUnavailable) {
		m.logger.Warn("auto-dismiss failed", "id", id, "error", err)
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Dismiss):
		m.dismissNewest()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		if _, err := m.center.Clear(); err != nil {
			m.logger.Warn("clear failed", "error", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.Cycle):
		m.cycleSeverity()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return m, nil
	}

	if !m.opts.Composer {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) dismissNewest() {
	if len(m.notifications) == 0 {
		return
	}
	newest := m.notifications[len(m.notifications)-1]
	delete(m.armed, newest.ID)
	if err := m.center.Remove(newest.ID); err != nil {
		m.logger.Warn("dismiss failed", "id", newest.ID, "error", err)
	}
}

func (m *Model) cycleSeverity() {
	all := domain.Severities()
	i := slices.Index(all, m.severity)
	m.severity = all[(i+1)%len(all)]
}

// submit shows the composed message. Rejected input comes back as a
// warning toast.
func (m *Model) submit() {
	msg := strings.TrimSpace(m.input.Value())
	if err := domain.ValidateMessage(msg); err != nil {
		errors.Report(m.handler, err)
		return
	}
	if _, err := m.center.Show(msg, m.severity); err != nil {
		m.logger.Error("show failed", "error", err)
		return
	}
	m.input.Reset()
}

func (m *Model) quit() tea.Cmd {
	if !m.quitting {
		m.quitting = true
		m.cancel()
	}
	return tea.Quit
}

func (m *Model) hasTimedToasts() bool {
	return slices.ContainsFunc(m.notifications, func(n domain.Notification) bool {
		return !n.Sticky()
	})
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var s strings.Builder
	s.WriteString(render.Stack(render.StackState{
		Notifications: m.notifications,
		Width:         m.width,
		Now:           m.opts.Now(),
	}))
	s.WriteString("\n\n")
	if m.opts.Composer {
		s.WriteString(render.Composer(render.ComposerState{
			Severity: m.severity,
			Input:    m.input.View(),
			Help:     m.help.View(m.keys),
		}))
	} else {
		s.WriteString(m.help.View(m.keys))
	}
	return s.String()
}

// Notifications returns the stack as last rendered.
func (m *Model) Notifications() []domain.Notification {
	return slices.Clone(m.notifications)
}

// Severity returns the composer's current severity.
func (m *Model) Severity() domain.Severity {
	return m.severity
}
