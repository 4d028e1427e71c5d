package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/notify"
)

func TestViewBeforeSizing(t *testing.T) {
	m := New(nil, "")
	if v := m.View(); !strings.Contains(v, "Initializing") {
		t.Errorf("pre-size view = %q", v)
	}
}

func TestViewRendersPanel(t *testing.T) {
	m := New(nil, "pm")
	m.width = 100
	m.height = 30
	m.panel.List = []notify.Notification{
		{ID: "a", Message: "Milestone slipped", Kind: notify.KindUrgent, CreatedAt: time.Now()},
		{ID: "b", Message: "Weekly digest", Kind: notify.KindInfo, Read: true, CreatedAt: time.Now()},
	}

	v := m.View()
	if !strings.Contains(v, "NOTIFICATIONS") {
		t.Error("view missing panel header")
	}
	if !strings.Contains(v, "Milestone slipped") || !strings.Contains(v, "Weekly digest") {
		t.Error("view missing notification messages")
	}
	if !strings.Contains(v, "q:quit") {
		t.Error("view missing key help")
	}
}

func TestViewRendersToast(t *testing.T) {
	m := New(nil, "")
	m.width = 100
	m.height = 30
	m.toast = &notify.Toast{NotificationID: "a", Message: "Client replied", Kind: notify.KindUrgent}

	if v := m.View(); !strings.Contains(v, "Client replied") {
		t.Error("view missing toast message")
	}
}

func TestNavigationWraps(t *testing.T) {
	m := New(nil, "")
	m.panel.List = []notify.Notification{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}

	next, _ := m.Update(down)
	m = next.(Model)
	if m.panel.Selected != 1 {
		t.Errorf("selected = %d after down, want 1", m.panel.Selected)
	}

	next, _ = m.Update(up)
	m = next.(Model)
	next, _ = m.Update(up)
	m = next.(Model)
	if m.panel.Selected != 2 {
		t.Errorf("selected = %d after wrap, want 2", m.panel.Selected)
	}
}

func TestWindowSizePropagates(t *testing.T) {
	m := New(nil, "")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	if m.width != 120 || m.statusBar.Width != 120 || m.panel.Width != 120 {
		t.Error("window size not propagated to sub-views")
	}
}
