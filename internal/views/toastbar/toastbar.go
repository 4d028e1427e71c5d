// Package toastbar renders the single ephemeral toast strip.
package toastbar

import (
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/notify"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/theme"
)

// View renders the toast, or "" when none is visible.
func View(t *notify.Toast) string {
	if t == nil {
		return ""
	}
	if t.Kind == notify.KindUrgent {
		return theme.StyleToastUrgent.Render("⚠ " + t.Message + "  (esc to dismiss)")
	}
	return theme.StyleToastInfo.Render(t.Message)
}
