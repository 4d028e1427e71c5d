package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestGateInactiveByDefault(t *testing.T) {
	g := NewGate()
	if g.ShouldSync() {
		t.Error("fresh gate reports ShouldSync = true")
	}
}

func TestGateValidCredential(t *testing.T) {
	g := NewGate()
	g.SetCredential(signedToken(t, jwt.RegisteredClaims{
		Subject:   "u-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}))

	sess, ok := g.Session()
	if !ok {
		t.Fatal("valid credential did not open the gate")
	}
	if sess.UserID != "u-42" {
		t.Errorf("UserID = %q, want u-42", sess.UserID)
	}
	if !g.ShouldSync() {
		t.Error("ShouldSync = false with a valid session")
	}
}

func TestGateRejectsBadCredentials(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "empty",
			token: func(t *testing.T) string { return "" },
		},
		{
			name:  "garbage",
			token: func(t *testing.T) string { return "not-a-jwt" },
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return signedToken(t, jwt.RegisteredClaims{
					Subject:   "u-42",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
				})
			},
		},
		{
			name: "no subject",
			token: func(t *testing.T) string {
				return signedToken(t, jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				})
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGate()
			g.SetCredential(tc.token(t))
			// Logged out is a normal state, not an error: the gate simply
			// stays closed.
			if g.ShouldSync() {
				t.Error("gate opened for an invalid credential")
			}
		})
	}
}

func TestGateExpiryMidSession(t *testing.T) {
	g := NewGate()
	g.SetCredential(signedToken(t, jwt.RegisteredClaims{
		Subject:   "u-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}))
	if !g.ShouldSync() {
		t.Fatal("gate closed before expiry")
	}

	g.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if g.ShouldSync() {
		t.Error("gate still open after credential expiry")
	}
}

func TestGateClear(t *testing.T) {
	g := NewGate()
	g.SetCredential(signedToken(t, jwt.RegisteredClaims{
		Subject:   "u-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}))
	g.Clear()
	if g.ShouldSync() {
		t.Error("gate open after Clear")
	}
}

func TestTokenWithoutExpiry(t *testing.T) {
	g := NewGate()
	g.SetCredential(signedToken(t, jwt.RegisteredClaims{Subject: "u-42"}))
	if !g.ShouldSync() {
		t.Error("token without exp claim should stay valid")
	}
}
