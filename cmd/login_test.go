// ABOUTME: Tests for the login and logout commands
// ABOUTME: Verifies token capture, persistence, and unconditional clearing

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"testing"
)

func TestLoginCommand_WithCallbackURL(t *testing.T) {
	var gotAuth string
	setupCommandTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":3,"email":"u@x.io","username":"u"}`))
	}))

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "https://app.example.com/dashboard.html?token=abc123")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d\n%s", exitCode, buf.String())
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("profile fetch auth = %q, want Bearer abc123", gotAuth)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Logged in as u")) {
		t.Errorf("expected login confirmation\n%s", buf.String())
	}

	// A later command picks the token up from disk.
	manager, _ := newSession()
	if !manager.IsAuthenticated() {
		t.Error("token should persist for subsequent commands")
	}
}

func TestLoginCommand_RejectedToken(t *testing.T) {
	setupCommandTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "bogus")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	manager, _ := newSession()
	if manager.IsAuthenticated() {
		t.Error("rejected token must not persist")
	}
}

func TestLogoutCommand_ClearsDespiteServerError(t *testing.T) {
	setupCommandTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	seedToken(t, "abc123")

	var buf bytes.Buffer
	exitCode := runLogout(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d\n%s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Warning")) {
		t.Error("expected server failure warning")
	}
	manager, _ := newSession()
	if manager.IsAuthenticated() {
		t.Error("logout must clear the local token")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	requests := 0
	setupCommandTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	var buf bytes.Buffer
	exitCode := runLogout(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if requests != 0 {
		t.Errorf("logout without a session must not call the API, saw %d", requests)
	}
}
