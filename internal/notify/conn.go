package notify

import (
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

// ConnState is the push channel lifecycle state.
type ConnState string

const (
	StateAbsent     ConnState = "absent"
	StateConnecting ConnState = "connecting"
	StateOpen       ConnState = "open"
	StateClosed     ConnState = "closed"
)

// Endpoint derives the push-channel URL from the REST base address: the
// scheme is swapped for its WebSocket equivalent, the notification path is
// parameterized by the user identity, and the credential rides as a query
// parameter because the channel has no separate handshake step.
func Endpoint(base, userID, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/ws/notifications/" + url.PathEscape(userID)
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Conn owns the zero-or-one live push channel for the active session.
// Opening a new channel supersedes any prior one; a dropped channel stays
// absent until the session identity changes again. Correctness comes from
// REST reconciliation, so there is no reconnect loop here.
type Conn struct {
	mu    sync.Mutex
	ws    *websocket.Conn
	state ConnState
	log   *slog.Logger
}

// NewConn creates a manager with no channel.
func NewConn(log *slog.Logger) *Conn {
	if log == nil {
		log = slog.Default()
	}
	return &Conn{state: StateAbsent, log: log}
}

// State returns the current channel state.
func (c *Conn) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open dials the endpoint and starts delivering inbound frames, in arrival
// order, to the given handler. Any previously open channel is closed first.
func (c *Conn) Open(endpoint string, frames func([]byte)) error {
	c.mu.Lock()
	if c.ws != nil {
		c.ws.Close()
		c.ws = nil
	}
	c.state = StateConnecting
	c.mu.Unlock()

	ws, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		c.mu.Lock()
		c.state = StateClosed
		c.mu.Unlock()
		return fmt.Errorf("dial push channel: %w", err)
	}

	c.mu.Lock()
	c.ws = ws
	c.state = StateOpen
	c.mu.Unlock()

	go c.readLoop(ws, frames)
	return nil
}

// Close tears down the channel if open. Idempotent: closing an already
// closed or never-opened channel is a no-op.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws != nil {
		c.ws.Close()
		c.ws = nil
	}
	if c.state != StateAbsent {
		c.state = StateClosed
	}
}

func (c *Conn) readLoop(ws *websocket.Conn, frames func([]byte)) {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if c.ws == ws {
				c.ws = nil
				c.state = StateClosed
			}
			c.mu.Unlock()
			ws.Close()
			c.log.Info("push channel closed", "err", err)
			return
		}
		frames(data)
	}
}
