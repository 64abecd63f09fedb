// ABOUTME: Session manager owning authentication state and guards
// ABOUTME: Token capture from OAuth callback URLs, auth/admin checks, logout

package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jothyanandanch/ssnapify/internal/client"
)

// ErrNotAuthenticated is returned by guards when no token is stored.
var ErrNotAuthenticated = errors.New("not logged in: run 'ssnapify login'")

// ErrNotAdmin is returned when the current user lacks admin rights.
var ErrNotAdmin = errors.New("admin privileges required")

// Manager owns the authentication state used by every guarded command and
// screen.
type Manager struct {
	store *Store
	api   *client.Client
}

// NewManager wires the store and the API client together.
func NewManager(store *Store, api *client.Client) *Manager {
	return &Manager{store: store, api: api}
}

// Store exposes the underlying session store.
func (m *Manager) Store() *Store {
	return m.store
}

// IsAuthenticated reports whether a token is present. A stale token still
// reads as authenticated until the first API call answers 401; validity is
// checked reactively, never locally.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.store.Token()
	return ok
}

// RequireAuth guards protected operations. It never issues an API call; when
// no token is present the caller must bail before any network I/O.
func (m *Manager) RequireAuth() error {
	if !m.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// RequireAdmin requires auth, then fetches the profile and checks is_admin.
func (m *Manager) RequireAdmin(ctx context.Context) (*client.User, error) {
	if err := m.RequireAuth(); err != nil {
		return nil, err
	}
	user, err := m.RefreshProfile(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, ErrNotAdmin
	}
	return user, nil
}

// CurrentUser returns the cached profile, if any.
func (m *Manager) CurrentUser() (*client.User, bool) {
	return m.store.User()
}

// RefreshProfile fetches /users/me and updates the cache.
func (m *Manager) RefreshProfile(ctx context.Context) (*client.User, error) {
	user, err := m.api.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.store.SetUser(user); err != nil {
		return nil, fmt.Errorf("failed to cache profile: %w", err)
	}
	return user, nil
}

// ExtractToken pulls the bearer token out of an OAuth callback URL
// (the provider redirects with a token query parameter) or accepts a raw
// token string. The token never appears in any URL we keep.
func ExtractToken(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty token")
	}

	if strings.Contains(raw, "://") || strings.Contains(raw, "?") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("invalid callback URL: %w", err)
		}
		token := u.Query().Get("token")
		if token == "" {
			return "", errors.New("callback URL carries no token parameter")
		}
		return token, nil
	}

	if strings.ContainsAny(raw, " \t") {
		return "", errors.New("token must not contain whitespace")
	}
	return raw, nil
}

// Login stores the captured token and eagerly fetches the profile with it.
// On failure the token may already have been cleared by the 401 handler.
func (m *Manager) Login(ctx context.Context, raw string) (*client.User, error) {
	token, err := ExtractToken(raw)
	if err != nil {
		return nil, err
	}
	if err := m.store.SetToken(token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return m.RefreshProfile(ctx)
}

// Logout posts the server-side logout best-effort and clears the store
// unconditionally. The returned error is the server failure, if any;
// callers surface it as a warning, never as a fatal condition.
func (m *Manager) Logout(ctx context.Context, allDevices bool) error {
	var serverErr error
	if m.IsAuthenticated() {
		if allDevices {
			serverErr = m.api.LogoutAllDevices(ctx)
		} else {
			serverErr = m.api.Logout(ctx)
		}
	}
	m.store.Clear()
	if errors.Is(serverErr, client.ErrUnauthorized) {
		// Token was already dead; nothing to warn about.
		return nil
	}
	return serverErr
}
