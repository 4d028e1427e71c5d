package notify

import (
	"fmt"
	"testing"
	"time"
)

func newTestClassifier(store *Store) (*Classifier, *int) {
	signals := 0
	cls := NewClassifier(store, func() { signals++ }, nil)
	return cls, &signals
}

func TestRefreshFrameSignalsOnly(t *testing.T) {
	store := NewStore(nil, nil)
	cls, signals := newTestClassifier(store)

	cls.Handle([]byte(`{"type":"REFRESH_PROJECTS"}`))

	if *signals != 1 {
		t.Errorf("signals = %d, want 1", *signals)
	}
	if list, _ := store.Snapshot(); len(list) != 0 {
		t.Errorf("refresh frame synthesized %d notifications, want 0", len(list))
	}
}

func TestAlertFramesSynthesizeProvisional(t *testing.T) {
	tests := []struct {
		event string
	}{
		{"URGENT_ALERT"},
		{"ONBOARDING_SUBMISSION"},
	}
	for _, tc := range tests {
		t.Run(tc.event, func(t *testing.T) {
			store := NewStore(nil, nil)
			cls, signals := newTestClassifier(store)
			now := time.Now()
			cls.now = func() time.Time { return now }

			frame := fmt.Sprintf(`{"type":%q,"message":"Client replied","project_id":"p-7"}`, tc.event)
			cls.Handle([]byte(frame))

			if *signals != 1 {
				t.Errorf("signals = %d, want 1", *signals)
			}
			list, unread := store.Snapshot()
			if len(list) != 1 {
				t.Fatalf("list has %d entries, want 1", len(list))
			}
			n := list[0]
			if !n.Provisional() {
				t.Errorf("synthesized id %q is not provisional", n.ID)
			}
			if n.Kind != KindUrgent || n.Read {
				t.Errorf("synthesized entry = %+v, want unread urgent", n)
			}
			if n.Message != "Client replied" || n.ProjectID != "p-7" {
				t.Errorf("payload fields not copied: %+v", n)
			}
			if !n.CreatedAt.Equal(now) {
				t.Errorf("createdAt = %v, want %v", n.CreatedAt, now)
			}
			if unread != 1 {
				t.Errorf("unread = %d, want 1", unread)
			}
		})
	}
}

func TestUnknownDiscriminantIgnored(t *testing.T) {
	store := NewStore(nil, nil)
	cls, signals := newTestClassifier(store)

	cls.Handle([]byte(`{"type":"FUTURE_EVENT_CLASS","message":"whatever"}`))

	if *signals != 0 {
		t.Errorf("unknown event fired %d signals, want 0", *signals)
	}
	if list, _ := store.Snapshot(); len(list) != 0 {
		t.Errorf("unknown event synthesized %d notifications", len(list))
	}
}

func TestMalformedFrameDropped(t *testing.T) {
	store := NewStore(nil, nil)
	cls, signals := newTestClassifier(store)

	cls.Handle([]byte(`{not json`))
	cls.Handle(nil)

	if *signals != 0 {
		t.Errorf("malformed frames fired %d signals, want 0", *signals)
	}
	if list, _ := store.Snapshot(); len(list) != 0 {
		t.Errorf("malformed frames synthesized %d notifications", len(list))
	}
}

func TestUnreadInvariantOverFrameSequence(t *testing.T) {
	store := NewStore(nil, nil)
	cls, _ := newTestClassifier(store)

	frames := [][]byte{
		[]byte(`{"type":"URGENT_ALERT","message":"one"}`),
		[]byte(`{"type":"REFRESH_PROJECTS"}`),
		[]byte(`{"type":"ONBOARDING_SUBMISSION","message":"two"}`),
		[]byte(`{"type":"UNKNOWN"}`),
		[]byte(`{"type":"URGENT_ALERT","message":"three"}`),
	}
	for _, f := range frames {
		cls.Handle(f)
		assertConsistent(t, store)
	}

	if _, unread := store.Snapshot(); unread != 3 {
		t.Errorf("unread = %d after three alert frames, want 3", unread)
	}
}
