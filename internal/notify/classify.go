package notify

import (
	"encoding/json"
	"log/slog"
	"time"
)

// Push-channel event classes. Unrecognized classes are ignored so future
// backend events never crash the classifier.
const (
	EventRefreshProjects      = "REFRESH_PROJECTS"
	EventUrgentAlert          = "URGENT_ALERT"
	EventOnboardingSubmission = "ONBOARDING_SUBMISSION"
)

// Frame is the decoded push-channel payload. Alert-class frames additionally
// carry a message and optionally a project reference.
type Frame struct {
	Type      string `json:"type"`
	Message   string `json:"message,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
}

// Classifier interprets inbound push frames in arrival order and routes each
// to a refresh signal, optionally preceded by a provisional insert.
type Classifier struct {
	store  *Store
	signal func()
	now    func() time.Time
	log    *slog.Logger
}

// NewClassifier wires a classifier to the store it inserts into and the
// refresh signal it fires.
func NewClassifier(store *Store, signal func(), log *slog.Logger) *Classifier {
	if log == nil {
		log = slog.Default()
	}
	return &Classifier{store: store, signal: signal, now: time.Now, log: log}
}

// Handle processes one raw frame. Malformed payloads are logged and dropped,
// never propagated.
func (c *Classifier) Handle(data []byte) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		c.log.Warn("dropping malformed push frame", "err", err)
		return
	}
	switch f.Type {
	case EventRefreshProjects:
		c.signal()
	case EventUrgentAlert, EventOnboardingSubmission:
		// Synthesize the urgent entry before the re-fetch so the toast
		// surfaces without waiting on the REST round trip. The fetch
		// result supersedes it.
		now := c.now()
		c.store.Prepend(Notification{
			ID:        localID(now),
			Message:   f.Message,
			Kind:      KindUrgent,
			CreatedAt: now,
			ProjectID: f.ProjectID,
		})
		c.signal()
	default:
		c.log.Debug("ignoring unknown push event class", "type", f.Type)
	}
}
