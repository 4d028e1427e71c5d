// Package auth holds the client-side session state and the gate that
// decides whether notification synchronization should run at all.
package auth

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session identifies the authenticated user for the lifetime of a credential.
type Session struct {
	UserID string
	Token  string
}

// Gate derives "should synchronize" from the presence of a valid credential
// and a resolvable user identity. It has no side effects; callers re-evaluate
// it on login, logout, and expiry.
type Gate struct {
	mu      sync.Mutex
	session *Session
	now     func() time.Time
}

// NewGate creates an inactive gate.
func NewGate() *Gate {
	return &Gate{now: time.Now}
}

// SetCredential resolves the token into a session. An unparseable or expired
// token leaves the gate inactive; this is the normal logged-out state, not
// an error.
func (g *Gate) SetCredential(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = resolve(token, g.now())
}

// Clear drops the current session (logout).
func (g *Gate) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = nil
}

// Session returns the active session, if any. The gate re-checks expiry on
// every call so a credential that lapses mid-session closes the gate.
func (g *Gate) Session() (Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return Session{}, false
	}
	if resolve(g.session.Token, g.now()) == nil {
		g.session = nil
		return Session{}, false
	}
	return *g.session, true
}

// ShouldSync reports whether a synchronization session should exist.
func (g *Gate) ShouldSync() bool {
	_, ok := g.Session()
	return ok
}

// resolve extracts the user identity from the credential. The client never
// holds the signing key, so claims are read unverified; the backend is the
// one enforcing signatures.
func resolve(token string, now time.Time) *Session {
	if token == "" {
		return nil
	}
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.Subject == "" {
		return nil
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return nil
	}
	return &Session{UserID: claims.Subject, Token: token}
}
