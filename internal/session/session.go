// Package session tracks the currently signed-in identity for a client
// process and decides which routes a session may navigate to.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Identity is the resolved identity record of a signed-in user.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Session holds the current identity, or its absence. It is safe for
// concurrent use; writes go only through SetUser and ClearUser, which
// also keep the on-disk snapshot in sync so the identity survives a
// restart.
type Session struct {
	mu   sync.RWMutex
	path string
	user *Identity
}

// Load initializes a session from the snapshot at path. A missing or
// unreadable snapshot yields an anonymous session rather than an error;
// a stale file must never lock the user out of starting up.
func Load(path string) *Session {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil || id.ID == "" {
		return s
	}
	s.user = &id
	return s
}

// User returns the current identity, or nil when anonymous.
func (s *Session) User() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser replaces the identity wholesale and persists the snapshot.
func (s *Session) SetUser(id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &id

	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encoding session snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session snapshot: %w", err)
	}
	return nil
}

// ClearUser drops the identity and removes the snapshot. Clearing an
// already-anonymous session is a no-op.
func (s *Session) ClearUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session snapshot: %w", err)
	}
	return nil
}
