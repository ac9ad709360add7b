package twelveweeks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// testNow is the frozen clock used by clock-sensitive tests.
var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

const (
	testToken    = "test-token-abc"
	testEmail    = "alex@example.com"
	testPassword = "hunter2"
)

func testUser() UserProfile {
	return UserProfile{
		ID:            1,
		Email:         testEmail,
		Username:      "alex",
		FullName:      "Alex Doe",
		IsActive:      true,
		CurrentStreak: 4,
		LongestStreak: 9,
	}
}

// authHandlers registers the login and profile endpoints every session test
// needs on mux.
func authHandlers(t *testing.T, mux *http.ServeMux) {
	t.Helper()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostFormValue("username") != testEmail || r.PostFormValue("password") != testPassword {
			http.Error(w, `{"detail":"Incorrect email or password"}`, http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(AuthToken{AccessToken: testToken, TokenType: "bearer"})
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			http.Error(w, `{"detail":"Not authenticated"}`, http.StatusUnauthorized)
			return
		}
		u := testUser()
		_ = json.NewEncoder(w).Encode(u)
	})
}

// newTestClient builds a Client against srv with an in-memory token store and
// the frozen test clock. The server is shut down via t.Cleanup.
func newTestClient(t *testing.T, mux *http.ServeMux) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL,
		WithMemoryTokenStore(),
		WithClock(func() time.Time { return testNow }, time.UTC),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

// newLoggedInClient logs the test user in before returning.
func newLoggedInClient(t *testing.T, mux *http.ServeMux) (*Client, *httptest.Server) {
	t.Helper()
	authHandlers(t, mux)
	c, srv := newTestClient(t, mux)
	if err := c.Login(context.Background(), testEmail, testPassword); err != nil {
		t.Fatalf("login: %v", err)
	}
	return c, srv
}
