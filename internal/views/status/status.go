package status

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/notify"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	ConnState notify.ConnState
	Unread    int
	Total     int
	User      string
	Width     int
}

// New creates a status bar model.
func New() Model {
	return Model{ConnState: notify.StateAbsent}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var connStr string
	switch m.ConnState {
	case notify.StateOpen:
		connStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● Live")
	case notify.StateConnecting:
		connStr = lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("◌ Connecting")
	default:
		connStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("○ Offline")
	}

	counts := fmt.Sprintf("%d notifications", m.Total)
	badge := ""
	if m.Unread > 0 {
		badge = theme.StyleBadge.Render(fmt.Sprintf("%d unread", m.Unread))
	} else {
		badge = theme.StyleDimmed.Render("all read")
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := connStr + sep + counts + sep + badge
	if m.User != "" {
		content += sep + theme.StyleDimmed.Render(m.User)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
