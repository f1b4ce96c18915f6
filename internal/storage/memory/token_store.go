// Package memory provides in-memory storage implementations for tests
// and ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"fraudwatch-client/internal/storage"
)

// TokenStore is an in-memory implementation of storage.TokenStorage.
// Nothing survives process exit; useful when durability is not wanted.
type TokenStore struct {
	mu      sync.RWMutex
	session *storage.PersistedSession
}

// NewTokenStore creates an empty in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Load returns the stored session, or storage.ErrNotFound.
func (s *TokenStore) Load(_ context.Context) (*storage.PersistedSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil, storage.ErrNotFound
	}

	// Return a copy to prevent external mutation
	sessionCopy := *s.session
	return &sessionCopy, nil
}

// Save replaces the stored session.
func (s *TokenStore) Save(_ context.Context, ps *storage.PersistedSession) error {
	if ps == nil || ps.Token == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sessionCopy := *ps
	s.session = &sessionCopy
	return nil
}

// Clear removes the stored session.
func (s *TokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	return nil
}
