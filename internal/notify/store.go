package notify

import (
	"log/slog"
	"sync"
)

// Acker issues server acknowledgments for read-state changes. *api.Client
// satisfies it.
type Acker interface {
	MarkRead(id string) error
	MarkAllRead() error
}

// Store is the authoritative client-side notification list. Reconciliation
// replaces the list wholesale; read-state mutations apply optimistically and
// are acknowledged to the server after the fact. UnreadCount is always
// recomputed from the list, never tracked independently of it.
type Store struct {
	mu     sync.Mutex
	list   []Notification
	unread int

	acks     Acker
	log      *slog.Logger
	onChange func()
}

// NewStore creates an empty store. acks may be nil when no server
// acknowledgment path exists (tests).
func NewStore(acks Acker, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{acks: acks, log: log}
}

// SetOnChange registers a single callback invoked after every mutation,
// outside the store lock. Must be set before the store is shared.
func (s *Store) SetOnChange(fn func()) {
	s.onChange = fn
}

// Snapshot returns a copy of the current list and the unread count.
func (s *Store) Snapshot() ([]Notification, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.list))
	copy(out, s.list)
	return out, s.unread
}

// Unread returns the current unread count.
func (s *Store) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// Replace installs a freshly fetched authoritative set, discarding any
// provisional entries. Full replace, never a merge by id: an out-of-order
// completing fetch still converges because its result is treated as the
// truth as of the request.
func (s *Store) Replace(list []Notification) {
	s.mu.Lock()
	s.list = make([]Notification, len(list))
	copy(s.list, list)
	s.unread = countUnread(s.list)
	s.mu.Unlock()
	s.notify()
}

// Prepend inserts a provisional entry at the head of the list ahead of the
// reconciliation fetch that will supersede it.
func (s *Store) Prepend(n Notification) {
	s.mu.Lock()
	s.list = append([]Notification{n}, s.list...)
	s.unread = countUnread(s.list)
	s.mu.Unlock()
	s.notify()
}

// MarkRead flips the matching entry to read and decrements the unread count,
// then acknowledges the server. A failed acknowledgment is logged and the
// local mutation stands; the next reconciliation is the consistency backstop.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	changed := false
	for i := range s.list {
		if s.list[i].ID == id {
			if !s.list[i].Read {
				s.list[i].Read = true
				changed = true
			}
			break
		}
	}
	if changed {
		s.unread = countUnread(s.list)
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
	if s.acks != nil {
		go func() {
			if err := s.acks.MarkRead(id); err != nil {
				s.log.Warn("mark-read acknowledgment failed", "id", id, "err", err)
			}
		}()
	}
}

// MarkAllRead clears the list and zeroes the unread count, then issues a
// single server-wide acknowledgment with the same non-rollback policy.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	s.list = nil
	s.unread = 0
	s.mu.Unlock()
	s.notify()
	if s.acks != nil {
		go func() {
			if err := s.acks.MarkAllRead(); err != nil {
				s.log.Warn("mark-all-read acknowledgment failed", "err", err)
			}
		}()
	}
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

func countUnread(list []Notification) int {
	n := 0
	for i := range list {
		if !list[i].Read {
			n++
		}
	}
	return n
}
