// Package session holds the client-side authenticated identity: a single
// slot persisted as a JSON file so the login survives restarts, the same
// role browser localStorage plays for the web frontend.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Identity is the authenticated principal as the backend reports it.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

// Store is the single source of truth for "who is logged in". It holds at
// most one Identity. Mutation and persistence are synchronous and guarded by
// one mutex, so readers always observe the last committed value.
type Store struct {
	path string

	mu      sync.Mutex
	current *Identity
}

// NewStore creates a store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the conventional location of the persisted identity.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "helpdesk", "session.json"), nil
}

// Restore loads the persisted Identity into memory. Missing or malformed
// data leaves the session empty; it never fails.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return
	}
	if id.ID == "" {
		// A record without an id is not a usable session.
		return
	}

	s.current = &id
}

// Set stores the Identity in memory and persists it, replacing any prior
// value.
func (s *Store) Set(id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(id)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}

	s.current = &id
	return nil
}

// Get returns the current Identity, or false when logged out.
func (s *Store) Get() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

// Clear removes the in-memory and persisted Identity.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
