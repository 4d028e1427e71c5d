package stub

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks the open push channels per user and fans frames out to them.
type Hub struct {
	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]bool
	log   *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{conns: make(map[string]map[*websocket.Conn]bool), log: log}
}

// Add registers a connection for the user.
func (h *Hub) Add(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[userID]
	if !ok {
		set = make(map[*websocket.Conn]bool)
		h.conns[userID] = set
	}
	set[conn] = true
}

// Remove drops and closes a connection.
func (h *Hub) Remove(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[userID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
	conn.Close()
}

// Push sends one JSON frame to every open channel of the user. Write
// failures drop the connection; the client's REST reconciliation covers any
// missed frame.
func (h *Hub) Push(userID string, frame interface{}) {
	data, err := json.Marshal(frame)
	if err != nil {
		h.log.Error("marshal push frame", "err", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Warn("push write failed, dropping client", "user", userID, "err", err)
			delete(h.conns[userID], conn)
			conn.Close()
		}
	}
}

// Close shuts every channel down.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.conns {
		for conn := range set {
			conn.Close()
		}
	}
	h.conns = make(map[string]map[*websocket.Conn]bool)
}
