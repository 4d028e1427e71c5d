package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNotifications(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notifications" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]NotificationRecord{{
			ID:        "n-1",
			Message:   "Client replied",
			Type:      "URGENT_ALERT",
			CreatedAt: created,
			ProjectID: "p-1",
		}})
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	c.SetToken("tok-123")
	recs, err := c.Notifications()
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.ID != "n-1" || r.Message != "Client replied" || r.Type != "URGENT_ALERT" ||
		!r.CreatedAt.Equal(created) || r.IsRead || r.ProjectID != "p-1" {
		t.Errorf("record = %+v", r)
	}
}

func TestMarkReadPath(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	if err := c.MarkRead("n-7"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if gotPath != "/api/notifications/n-7/read" {
		t.Errorf("path = %q", gotPath)
	}

	if err := c.MarkAllRead(); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if gotPath != "/api/notifications/read-all" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestErrorStatusSurfaced(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	if _, err := c.Notifications(); err == nil {
		t.Error("Notifications did not surface 403")
	}
	if err := c.MarkRead("x"); err == nil {
		t.Error("MarkRead did not surface 403")
	}
}

func TestLogin(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode login: %v", err)
		}
		if req.Username != "pm" || req.Password != "hunter2" {
			t.Errorf("credentials = %+v", req)
		}
		json.NewEncoder(w).Encode(LoginResponse{Token: "tok", UserID: "u-1"})
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	resp, err := c.Login("pm", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token != "tok" || resp.UserID != "u-1" {
		t.Errorf("response = %+v", resp)
	}
}
