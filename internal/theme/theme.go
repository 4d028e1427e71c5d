// Package theme provides the Lip Gloss palette and reusable styles for the
// Delivery Pipeline TUI. It is a leaf package with no internal imports to
// avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Notification colors.
var (
	ColorUrgent = lipgloss.Color("#dc2626")
	ColorInfo   = lipgloss.Color("#3b82f6")
	ColorRead   = lipgloss.Color("#6b7280")
	ColorUnread = lipgloss.Color("#f9fafb")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
	ColorBadge   = lipgloss.Color("#f59e0b")
)

var (
	StyleHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorBright)
	StyleDimmed = lipgloss.NewStyle().Foreground(ColorDimmed)
	StyleBadge  = lipgloss.NewStyle().Bold(true).Foreground(ColorBadge)

	StyleToastUrgent = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBright).
				Background(ColorDanger).
				Padding(0, 1)
	StyleToastInfo = lipgloss.NewStyle().
			Foreground(ColorBright).
			Background(ColorInfo).
			Padding(0, 1)
)

// KindColor returns the color for a notification kind string.
func KindColor(kind string) lipgloss.Color {
	if kind == "urgent" {
		return ColorUrgent
	}
	return ColorInfo
}
