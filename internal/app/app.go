// Package app holds the root Bubble Tea model for the dashboard TUI. It is
// a thin reader over the notification engine: all state lives in the engine,
// the model only snapshots and renders it.
package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/notify"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/theme"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/views/notices"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/views/status"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/views/toastbar"
)

// changedMsg signals that the engine's list, count, or toast changed.
type changedMsg struct{}

// Model is the root Bubble Tea model.
type Model struct {
	engine  *notify.Engine
	changes <-chan struct{}

	keys   KeyMap
	width  int
	height int

	toast     *notify.Toast
	statusBar status.Model
	panel     notices.Model
}

// New creates the root model over a running engine.
func New(engine *notify.Engine, user string) Model {
	m := Model{
		engine:    engine,
		keys:      DefaultKeyMap(),
		statusBar: status.New(),
		panel:     notices.New(),
	}
	m.statusBar.User = user
	if engine != nil {
		m.changes = engine.Changes()
		m.pull()
	}
	return m
}

// Init starts waiting on engine changes.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.panel.Width = msg.Width
		m.panel.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case changedMsg:
		m.pull()
		return m, m.waitForChange()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.engine != nil {
			m.engine.Stop()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		if len(m.panel.List) > 0 {
			m.panel.Selected = (m.panel.Selected + 1) % len(m.panel.List)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.panel.List) > 0 {
			m.panel.Selected = (m.panel.Selected - 1 + len(m.panel.List)) % len(m.panel.List)
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if id := m.panel.SelectedID(); id != "" && m.engine != nil {
			m.engine.MarkRead(id)
			m.pull()
		}
		return m, nil

	case key.Matches(msg, m.keys.AllRead):
		if m.engine != nil {
			m.engine.MarkAllRead()
			m.pull()
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.engine != nil {
			m.engine.DismissToast()
			m.pull()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.engine != nil {
			m.engine.Refresh()
		}
		return m, nil
	}
	return m, nil
}

// pull snapshots engine state into the view models.
func (m *Model) pull() {
	if m.engine == nil {
		return
	}
	list, unread := m.engine.Snapshot()
	m.panel.List = list
	m.panel.Clamp()
	m.statusBar.Unread = unread
	m.statusBar.Total = len(list)
	m.statusBar.ConnState = m.engine.ConnState()
	m.toast = m.engine.Toast()
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	sections := []string{m.statusBar.View()}
	if toast := toastbar.View(m.toast); toast != "" {
		sections = append(sections, toast)
	}
	sections = append(sections,
		m.panel.View(),
		theme.StyleDimmed.Render("  j/k:navigate  enter:mark read  a:mark all  esc:dismiss toast  r:refresh  q:quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
