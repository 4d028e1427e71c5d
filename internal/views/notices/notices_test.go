package notices

import (
	"strings"
	"testing"

	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/notify"
)

func TestClampAfterShrink(t *testing.T) {
	m := New()
	m.List = []notify.Notification{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	m.Selected = 2

	m.List = m.List[:1]
	m.Clamp()
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
	if got := m.SelectedID(); got != "a" {
		t.Errorf("SelectedID = %q, want a", got)
	}
}

func TestSelectedIDEmpty(t *testing.T) {
	m := New()
	if got := m.SelectedID(); got != "" {
		t.Errorf("SelectedID on empty list = %q", got)
	}
}

func TestViewEmptyList(t *testing.T) {
	m := New()
	if v := m.View(); !strings.Contains(v, "Nothing to show") {
		t.Errorf("empty view = %q", v)
	}
}

func TestViewMarksUrgent(t *testing.T) {
	m := New()
	m.List = []notify.Notification{
		{ID: "a", Message: "Deadline at risk", Kind: notify.KindUrgent},
	}
	if v := m.View(); !strings.Contains(v, "!") || !strings.Contains(v, "Deadline at risk") {
		t.Errorf("urgent entry not rendered: %q", v)
	}
}
