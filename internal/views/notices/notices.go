// Package notices renders the notification list panel.
package notices

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/notify"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/theme"
)

// Model holds the list panel state.
type Model struct {
	List     []notify.Notification
	Selected int
	Width    int
	Height   int
}

// New creates an empty list panel.
func New() Model {
	return Model{}
}

// Clamp keeps the selection inside the list after updates.
func (m *Model) Clamp() {
	if m.Selected >= len(m.List) {
		m.Selected = len(m.List) - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
}

// SelectedID returns the id under the cursor, or "".
func (m Model) SelectedID() string {
	if m.Selected < 0 || m.Selected >= len(m.List) {
		return ""
	}
	return m.List[m.Selected].ID
}

// View renders the panel.
func (m Model) View() string {
	header := theme.StyleHeader.Render("=== NOTIFICATIONS ======================================================")
	lines := []string{header}

	if len(m.List) == 0 {
		lines = append(lines, theme.StyleDimmed.Render("  Nothing to show"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, n := range m.List {
		prefix := "  "
		if i == m.Selected {
			prefix = "> "
		}
		lines = append(lines, prefix+renderLine(n))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderLine(n notify.Notification) string {
	glyph := "·"
	if n.Kind == notify.KindUrgent {
		glyph = "!"
	}
	glyphStr := lipgloss.NewStyle().Foreground(theme.KindColor(string(n.Kind))).Render(glyph)

	msgColor := theme.ColorUnread
	if n.Read {
		msgColor = theme.ColorRead
	}
	msg := lipgloss.NewStyle().Foreground(msgColor).Render(truncate(n.Message, 60))

	age := theme.StyleDimmed.Render(relAge(n.CreatedAt))
	return fmt.Sprintf("%s %s  %s", glyphStr, msg, age)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func relAge(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}
