// ABOUTME: Tests for the session manager
// ABOUTME: Login/logout invariants, guards, and OAuth callback token capture

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jothyanandanch/ssnapify/internal/client"
)

func newTestManager(t *testing.T, handler http.Handler) (*Manager, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := NewStore(t.TempDir())
	api := client.New(server.URL, store)
	return NewManager(store, api), server
}

func TestIsAuthenticated_FollowsToken(t *testing.T) {
	m, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	if m.IsAuthenticated() {
		t.Error("fresh session should not be authenticated")
	}
	if err := m.Store().SetToken("abc123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if !m.IsAuthenticated() {
		t.Error("token present implies authenticated")
	}
}

func TestRequireAuth_NoAPICall(t *testing.T) {
	requests := 0
	m, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	err := m.RequireAuth()
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if requests != 0 {
		t.Errorf("guard failure must not issue API calls, saw %d", requests)
	}
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"abc123", "abc123", false},
		{"  abc123  ", "abc123", false},
		{"https://app.example.com/dashboard.html?token=abc123", "abc123", false},
		{"https://app.example.com/dashboard.html?foo=1&token=xyz", "xyz", false},
		{"https://app.example.com/dashboard.html", "", true},
		{"", "", true},
		{"two words", "", true},
	}

	for _, tc := range cases {
		got, err := ExtractToken(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ExtractToken(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ExtractToken(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ExtractToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLogin_StoresTokenAndFetchesProfile(t *testing.T) {
	var gotAuth string
	m, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Errorf("expected /users/me, got %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.User{ID: 3, Email: "u@x.io", Username: "u"})
	}))

	user, err := m.Login(context.Background(), "https://app.example.com/dashboard.html?token=abc123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("profile fetch auth header = %q, want Bearer abc123", gotAuth)
	}
	if user.ID != 3 {
		t.Errorf("unexpected user: %+v", user)
	}

	token, ok := m.Store().Token()
	if !ok || token != "abc123" {
		t.Errorf("stored token = %q (%t), want abc123", token, ok)
	}
	cached, ok := m.CurrentUser()
	if !ok || cached.ID != 3 {
		t.Errorf("cached user = %+v (%t)", cached, ok)
	}
}

func TestLogin_InvalidTokenClearedBy401(t *testing.T) {
	m, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := m.Login(context.Background(), "dead-token")
	if !errors.Is(err, client.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if m.IsAuthenticated() {
		t.Error("401 during login must leave the store cleared")
	}
}

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	m, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"detail":"redis down"}`))
	}))

	if err := m.Store().SetToken("abc123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	serverErr := m.Logout(context.Background(), false)
	if serverErr == nil {
		t.Error("expected server error to be reported as warning")
	}
	if m.IsAuthenticated() {
		t.Error("logout must clear the store regardless of server failure")
	}
}

func TestLogout_AllDevicesEndpoint(t *testing.T) {
	var path string
	m, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok"}`))
	}))

	if err := m.Store().SetToken("abc123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := m.Logout(context.Background(), true); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if path != "/auth/logout-all-devices" {
		t.Errorf("expected /auth/logout-all-devices, got %s", path)
	}
}

func TestRequireAdmin(t *testing.T) {
	isAdmin := false
	m, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.User{ID: 1, Email: "a@b.c", IsAdmin: isAdmin})
	}))

	if _, err := m.RequireAdmin(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated without token, got %v", err)
	}

	if err := m.Store().SetToken("abc123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	if _, err := m.RequireAdmin(context.Background()); !errors.Is(err, ErrNotAdmin) {
		t.Errorf("expected ErrNotAdmin for regular user, got %v", err)
	}

	isAdmin = true
	user, err := m.RequireAdmin(context.Background())
	if err != nil {
		t.Fatalf("RequireAdmin: %v", err)
	}
	if !user.IsAdmin {
		t.Error("expected admin user")
	}
}
