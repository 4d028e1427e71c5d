// Package notify implements the real-time notification synchronization
// engine: a client-local, eventually-consistent mirror of the backend's
// notification list, fed by the WebSocket push channel and reconciled
// against the REST source of truth.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/api"
)

// Kind classifies a notification's presentation weight.
type Kind string

const (
	KindInfo   Kind = "info"
	KindUrgent Kind = "urgent"
)

// Notification is one entry in the client-side list. Authoritative entries
// carry server-assigned ids; provisional entries carry local ids and live
// only until the next successful reconciliation replaces the list.
type Notification struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
	Read      bool
	ProjectID string // informational reference only, never dereferenced here
}

// localIDPrefix keeps provisional ids disjoint from server-assigned ones.
const localIDPrefix = "local-"

// Provisional reports whether the entry was synthesized locally and is still
// awaiting supersession by a reconciliation fetch.
func (n Notification) Provisional() bool {
	return strings.HasPrefix(n.ID, localIDPrefix)
}

func localID(now time.Time) string {
	return fmt.Sprintf("%s%d", localIDPrefix, now.UnixNano())
}

// urgencyMarker is the substring of a server type string that maps a record
// to KindUrgent.
const urgencyMarker = "URGENT"

// FromRecord maps a server record into the client Notification shape.
func FromRecord(rec api.NotificationRecord) Notification {
	kind := KindInfo
	if strings.Contains(strings.ToUpper(rec.Type), urgencyMarker) {
		kind = KindUrgent
	}
	return Notification{
		ID:        rec.ID,
		Message:   rec.Message,
		Kind:      kind,
		CreatedAt: rec.CreatedAt,
		Read:      rec.IsRead,
		ProjectID: rec.ProjectID,
	}
}

// FromRecords maps a fetched set in order.
func FromRecords(recs []api.NotificationRecord) []Notification {
	out := make([]Notification, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromRecord(rec))
	}
	return out
}
