package notify

import (
	"sync"
	"time"
)

// Toast is the single ephemeral surface element. Message and NotificationID
// are captured at selection time, so a toast keeps displaying its last-known
// pair even if reconciliation supersedes the underlying record.
type Toast struct {
	NotificationID string
	Message        string
	Kind           Kind
}

const (
	// DefaultFreshnessWindow is how old an unread urgent entry may be and
	// still qualify for toast presentation.
	DefaultFreshnessWindow = 10 * time.Second
	// DefaultInfoDismissAfter is how long an info toast stays up before
	// auto-dismissing. Urgent toasts never auto-dismiss.
	DefaultInfoDismissAfter = 5 * time.Second
)

// Toaster enforces the toast policy: at most one toast visible, selected
// from unread urgent entries inside the freshness window, most recent
// qualifier wins.
type Toaster struct {
	mu      sync.Mutex
	current *Toast
	timer   *time.Timer

	window       time.Duration
	dismissAfter time.Duration
	now          func() time.Time
	onChange     func()
}

// NewToaster creates a toaster with the given freshness window and info
// auto-dismiss duration. Zero values select the defaults.
func NewToaster(window, dismissAfter time.Duration) *Toaster {
	if window <= 0 {
		window = DefaultFreshnessWindow
	}
	if dismissAfter <= 0 {
		dismissAfter = DefaultInfoDismissAfter
	}
	return &Toaster{window: window, dismissAfter: dismissAfter, now: time.Now}
}

// SetOnChange registers a single callback invoked outside the lock whenever
// the visible toast changes. Must be set before the toaster is shared.
func (t *Toaster) SetOnChange(fn func()) {
	t.onChange = fn
}

// Current returns the visible toast, or nil.
func (t *Toaster) Current() *Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return nil
	}
	c := *t.current
	return &c
}

// Observe scans the list for qualifying entries and supersedes the visible
// toast with the most recent one. An entry qualifies while it is urgent,
// unread, and no older than the freshness window; the boundary itself is
// included, strictly beyond it is not.
func (t *Toaster) Observe(list []Notification) {
	now := t.now()
	var pick *Notification
	for i := range list {
		n := &list[i]
		if n.Kind != KindUrgent || n.Read {
			continue
		}
		if now.Sub(n.CreatedAt) > t.window {
			continue
		}
		if pick == nil || n.CreatedAt.After(pick.CreatedAt) {
			pick = n
		}
	}
	if pick == nil {
		return
	}

	t.mu.Lock()
	if t.current != nil && t.current.NotificationID == pick.ID {
		t.mu.Unlock()
		return
	}
	t.show(&Toast{NotificationID: pick.ID, Message: pick.Message, Kind: pick.Kind})
	t.mu.Unlock()
	t.notify()
}

// Show displays an arbitrary toast, superseding any visible one. Info-kind
// toasts auto-dismiss after the configured duration.
func (t *Toaster) Show(toast Toast) {
	t.mu.Lock()
	t.show(&toast)
	t.mu.Unlock()
	t.notify()
}

// show installs the toast; caller holds the lock.
func (t *Toaster) show(toast *Toast) {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.current = toast
	if toast.Kind == KindInfo {
		t.timer = time.AfterFunc(t.dismissAfter, func() { t.ClearIf(toast.NotificationID) })
	}
}

// Dismiss clears the visible toast and returns it so the caller can issue
// the matching mark-read; dismissal and acknowledgment are one user action.
func (t *Toaster) Dismiss() *Toast {
	t.mu.Lock()
	toast := t.current
	t.clear()
	t.mu.Unlock()
	if toast != nil {
		t.notify()
	}
	return toast
}

// ClearIf clears the toast only when it references the given notification.
// Used when a notification is read through the list rather than the toast.
func (t *Toaster) ClearIf(notificationID string) {
	t.mu.Lock()
	if t.current == nil || t.current.NotificationID != notificationID {
		t.mu.Unlock()
		return
	}
	t.clear()
	t.mu.Unlock()
	t.notify()
}

// Clear unconditionally removes the visible toast.
func (t *Toaster) Clear() {
	t.mu.Lock()
	cleared := t.current != nil
	t.clear()
	t.mu.Unlock()
	if cleared {
		t.notify()
	}
}

// clear resets state; caller holds the lock.
func (t *Toaster) clear() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.current = nil
}

func (t *Toaster) notify() {
	if t.onChange != nil {
		t.onChange()
	}
}
