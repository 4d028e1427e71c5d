// Package stub is a self-contained stand-in for the Delivery Pipeline
// backend: JWT login, the notification REST subset the dashboard consumes,
// and the WebSocket push channel. It backs local demos and the engine's
// integration tests; the production backend stays external.
package stub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/subramaniyam22/Delivery-Pipeline-sub002/internal/api"
)

type userRecord struct {
	id       string
	password string
}

// Server holds the in-memory backend state.
type Server struct {
	secret []byte
	log    *slog.Logger
	hub    *Hub

	mu     sync.Mutex
	users  map[string]userRecord               // by username
	notifs map[string][]api.NotificationRecord // by user id, newest first
}

// New creates an empty stub backend signing tokens with secret.
func New(secret string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		secret: []byte(secret),
		log:    log,
		hub:    NewHub(log),
		users:  make(map[string]userRecord),
		notifs: make(map[string][]api.NotificationRecord),
	}
}

// AddUser registers a login.
func (s *Server) AddUser(username, password, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = userRecord{id: userID, password: password}
}

// Seed installs notifications for a user, newest first.
func (s *Server) Seed(userID string, recs ...api.NotificationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifs[userID] = append(append([]api.NotificationRecord{}, recs...), s.notifs[userID]...)
}

// Handler returns the stub's HTTP surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", s.handleLogin)
	mux.HandleFunc("/api/notifications", s.handleList)
	mux.HandleFunc("/api/notifications/", s.handleNotificationRoutes)
	mux.HandleFunc("/api/events", s.handleEvent)
	mux.HandleFunc("/ws/notifications/", s.handleWS)
	return mux
}

// Close tears down all push channels.
func (s *Server) Close() {
	s.hub.Close()
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	u, ok := s.users[req.Username]
	s.mu.Unlock()
	if !ok || u.password != req.Password {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	token, err := s.issueToken(u.id)
	if err != nil {
		http.Error(w, "token issue failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, api.LoginResponse{Token: token, UserID: u.id})
}

func (s *Server) issueToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// authenticate resolves the request's credential (Authorization header or
// token query parameter) to a user id.
func (s *Server) authenticate(r *http.Request) (string, bool) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	if token == "" {
		return "", false
	}
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	recs := append([]api.NotificationRecord{}, s.notifs[userID]...)
	s.mu.Unlock()
	writeJSON(w, recs)
}

// handleNotificationRoutes serves POST /api/notifications/{id}/read and
// POST /api/notifications/read-all.
func (s *Server) handleNotificationRoutes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/notifications/")
	switch {
	case rest == "read-all":
		s.mu.Lock()
		list := s.notifs[userID]
		for i := range list {
			list[i].IsRead = true
		}
		s.mu.Unlock()
	case strings.HasSuffix(rest, "/read"):
		id := strings.TrimSuffix(rest, "/read")
		s.mu.Lock()
		found := false
		list := s.notifs[userID]
		for i := range list {
			if list[i].ID == id {
				list[i].IsRead = true
				found = true
				break
			}
		}
		s.mu.Unlock()
		if !found {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
	default:
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// eventRequest injects a push event at a user, the way backend services
// would when projects change or urgent alerts fire.
type eventRequest struct {
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Message   string `json:"message,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var ev eventRequest
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil || ev.UserID == "" || ev.Type == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// Alert-class events also become server-authoritative notifications,
	// so the client's next fetch supersedes its provisional entry.
	if ev.Type != "REFRESH_PROJECTS" {
		rec := api.NotificationRecord{
			ID:        uuid.NewString(),
			Message:   ev.Message,
			Type:      ev.Type,
			CreatedAt: time.Now().UTC(),
			ProjectID: ev.ProjectID,
		}
		s.mu.Lock()
		s.notifs[ev.UserID] = append([]api.NotificationRecord{rec}, s.notifs[ev.UserID]...)
		s.mu.Unlock()
	}

	frame := map[string]string{"type": ev.Type}
	if ev.Message != "" {
		frame["message"] = ev.Message
	}
	if ev.ProjectID != "" {
		frame["project_id"] = ev.ProjectID
	}
	s.hub.Push(ev.UserID, frame)
	writeJSON(w, map[string]string{"status": "ok"})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authenticate(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	pathUser := strings.TrimPrefix(r.URL.Path, "/ws/notifications/")
	if pathUser != userID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", "err", err)
		return
	}
	s.log.Info("push client connected", "user", userID, "remote", r.RemoteAddr)
	s.hub.Add(userID, conn)

	go func() {
		defer func() {
			s.hub.Remove(userID, conn)
			s.log.Info("push client disconnected", "user", userID)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "err", err)
	}
}
