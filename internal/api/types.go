// Package api provides the typed REST client for the Delivery Pipeline
// backend. Types mirror the backend wire contract without assuming any
// shared code with it.
package api

import "time"

// NotificationRecord is a server-authoritative notification as returned by
// GET /api/notifications.
type NotificationRecord struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
	ProjectID string    `json:"project_id,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the credential issued on successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}
