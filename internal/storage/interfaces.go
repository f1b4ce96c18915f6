// Package storage defines persistence interfaces for the session layer.
// Implementations live in subpackages (sqlite, memory).
package storage

import (
	"context"
	"time"
)

// PersistedSession is the durable part of a session: the bearer token and
// the cached identity, saved and cleared together.
type PersistedSession struct {
	Token    string
	Username string
	FullName string
	SavedAt  time.Time
}

// TokenStorage persists the session token across process restarts.
// A session must survive a restart but never a logout/expiry event.
type TokenStorage interface {
	// Load returns the persisted session, or ErrNotFound if none exists.
	Load(ctx context.Context) (*PersistedSession, error)

	// Save replaces any persisted session with the given one.
	Save(ctx context.Context, s *PersistedSession) error

	// Clear removes the persisted session. Clearing an empty storage is a no-op.
	Clear(ctx context.Context) error
}
