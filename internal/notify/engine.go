package notify

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/api"
	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/auth"
)

// Backend is the REST surface the engine reconciles against. *api.Client
// satisfies it.
type Backend interface {
	Notifications() ([]api.NotificationRecord, error)
	Acker
}

// Options tune the engine. Zero values select defaults.
type Options struct {
	FreshnessWindow  time.Duration
	InfoDismissAfter time.Duration
	Logger           *slog.Logger
}

// Engine owns the synchronization session: it watches the auth gate, keeps
// zero-or-one push channel alive, classifies inbound frames, reconciles the
// store against REST on every refresh signal, and applies the toast policy
// to the merged list.
type Engine struct {
	backend Backend
	gate    *auth.Gate
	baseURL string
	log     *slog.Logger

	conn    *Conn
	store   *Store
	toaster *Toaster
	cls     *Classifier

	seq     atomic.Uint64 // refresh signal; only "changed" carries meaning
	refresh chan struct{} // coalesced wakeups for the run loop
	done    chan struct{}
	once    sync.Once

	subMu sync.Mutex
	subs  []chan struct{}
}

// NewEngine builds an engine around the given backend and gate. baseURL is
// the REST base address the push endpoint is derived from.
func NewEngine(backend Backend, gate *auth.Gate, baseURL string, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		backend: backend,
		gate:    gate,
		baseURL: baseURL,
		log:     log,
		conn:    NewConn(log),
		store:   NewStore(backend, log),
		toaster: NewToaster(opts.FreshnessWindow, opts.InfoDismissAfter),
		refresh: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	e.cls = NewClassifier(e.store, e.bump, log)
	e.store.SetOnChange(func() {
		list, _ := e.store.Snapshot()
		e.toaster.Observe(list)
		e.broadcast()
	})
	e.toaster.SetOnChange(e.broadcast)
	go e.run()
	return e
}

// SessionChanged re-evaluates the gate and rebuilds the push channel.
// Callers invoke it on login, logout, and credential expiry; the prior
// channel is always closed first so it never outlives its session.
func (e *Engine) SessionChanged() {
	e.conn.Close()
	sess, ok := e.gate.Session()
	if !ok {
		e.toaster.Clear()
		e.store.Replace(nil)
		return
	}
	endpoint, err := Endpoint(e.baseURL, sess.UserID, sess.Token)
	if err != nil {
		e.log.Warn("push endpoint derivation failed", "err", err)
	} else if err := e.conn.Open(endpoint, e.cls.Handle); err != nil {
		// Degraded but not broken: reconciliation still runs on session
		// entry, only push latency is lost.
		e.log.Warn("push channel unavailable", "err", err)
	}
	e.bump()
}

// Stop tears the engine down, closing the channel on this exit path too.
func (e *Engine) Stop() {
	e.once.Do(func() { close(e.done) })
	e.conn.Close()
}

// Snapshot returns the current list and unread count.
func (e *Engine) Snapshot() ([]Notification, int) {
	return e.store.Snapshot()
}

// Toast returns the visible toast, or nil.
func (e *Engine) Toast() *Toast {
	return e.toaster.Current()
}

// ConnState reports the push channel state for display purposes.
func (e *Engine) ConnState() ConnState {
	return e.conn.State()
}

// Signal returns the refresh signal's current value. Only changes are
// meaningful.
func (e *Engine) Signal() uint64 {
	return e.seq.Load()
}

// Changes returns a channel that receives a coalesced tick after every
// list, count, or toast change.
func (e *Engine) Changes() <-chan struct{} {
	ch := make(chan struct{}, 1)
	e.subMu.Lock()
	e.subs = append(e.subs, ch)
	e.subMu.Unlock()
	return ch
}

// MarkRead optimistically reads one notification and clears its toast if
// visible. The server acknowledgment happens behind the local mutation and
// is never rolled back on failure.
func (e *Engine) MarkRead(id string) {
	e.store.MarkRead(id)
	e.toaster.ClearIf(id)
}

// MarkAllRead optimistically clears the whole list and any visible toast.
func (e *Engine) MarkAllRead() {
	e.store.MarkAllRead()
	e.toaster.Clear()
}

// DismissToast removes the visible toast and marks its notification read;
// dismissal and acknowledgment are the same user action.
func (e *Engine) DismissToast() {
	if toast := e.toaster.Dismiss(); toast != nil {
		e.store.MarkRead(toast.NotificationID)
	}
}

// Refresh requests a reconcile, the same effect as a refresh-class push
// frame.
func (e *Engine) Refresh() {
	e.bump()
}

// HandleFrame feeds one raw push frame through the classifier. The
// connection read loop is the normal caller; it is exported for event
// injection in integration setups.
func (e *Engine) HandleFrame(data []byte) {
	e.cls.Handle(data)
}

// bump advances the refresh signal and wakes the run loop.
func (e *Engine) bump() {
	e.seq.Add(1)
	select {
	case e.refresh <- struct{}{}:
	default:
	}
}

func (e *Engine) run() {
	for {
		select {
		case <-e.done:
			return
		case <-e.refresh:
			// Each fetch runs on its own so rapid-fire signals never
			// back up frame processing. Completion order does not
			// matter: full replace converges regardless.
			go e.reconcile()
		}
	}
}

// reconcile pulls the authoritative set and installs it wholesale. A failed
// fetch keeps the stale list; the next signal is the retry trigger.
func (e *Engine) reconcile() {
	recs, err := e.backend.Notifications()
	if err != nil {
		e.log.Warn("notification fetch failed, keeping stale list", "err", err)
		return
	}
	e.store.Replace(FromRecords(recs))
}

func (e *Engine) broadcast() {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for _, ch := range e.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
