// ABOUTME: Persistent token and profile store for the CLI session
// ABOUTME: Keeps a JSON file in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jothyanandanch/ssnapify/internal/client"
)

const sessionFile = "session.json"

// Store persists the bearer token and the cached user profile. It implements
// client.TokenSource so a 401 clears it directly.
type Store struct {
	configDir string

	mu     sync.Mutex
	loaded bool
	data   sessionData
}

type sessionData struct {
	Token string       `json:"token,omitempty"`
	User  *client.User `json:"user,omitempty"`
}

// NewStore creates a store rooted at the given config directory.
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ssnapify")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ssnapify")
}

func (s *Store) sessionPath() string {
	return filepath.Join(s.configDir, sessionFile)
}

// load reads the session file once. Missing or invalid files start fresh.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	raw, err := os.ReadFile(s.sessionPath())
	if err != nil {
		return
	}
	var data sessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	s.data = data
}

// save writes the session file with owner-only permissions.
func (s *Store) save() error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.sessionPath(), raw, 0600)
}

// Token returns the stored bearer token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.data.Token, s.data.Token != ""
}

// SetToken persists a new bearer token.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.data.Token = token
	return s.save()
}

// User returns the cached profile, if any.
func (s *Store) User() (*client.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.data.User, s.data.User != nil
}

// SetUser caches the user profile alongside the token.
func (s *Store) SetUser(user *client.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.data.User = user
	return s.save()
}

// Clear drops the token and the cached profile together, keeping them in
// agreement. Best effort: a failed write still clears the in-memory state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.data = sessionData{}
	if err := s.save(); err != nil {
		os.Remove(s.sessionPath())
	}
}
