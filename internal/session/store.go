// Package session owns the client's bearer-token session state.
//
// The Store is the single mutable shared resource of the session layer.
// It is created once at process start and handed to every component that
// needs it; only auth operations and the unauthorized response
// interceptor mutate it.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"fraudwatch-client/internal/domain"
	"fraudwatch-client/internal/storage"
)

// Snapshot is a point-in-time copy of the session state.
// User is never populated unless Token is set.
type Snapshot struct {
	Token string
	User  *domain.UserProfile
}

// Store holds the current bearer token and cached user identity.
// Token and user are always set and cleared together, so callers never
// observe a half-updated session.
type Store struct {
	mu      sync.Mutex
	token   string
	user    *domain.UserProfile
	persist storage.TokenStorage
	logger  *log.Logger
}

// Options configures a Store.
type Options struct {
	// Persist, if non-nil, is written through on Set/Clear and read once
	// at construction to restore a token from a previous run.
	Persist storage.TokenStorage

	Logger *log.Logger
}

// New creates a session store, restoring any persisted token.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Store{
		persist: opts.Persist,
		logger:  logger,
	}

	if s.persist != nil {
		ps, err := s.persist.Load(context.Background())
		switch {
		case err == nil:
			s.token = ps.Token
			if ps.Username != "" {
				s.user = &domain.UserProfile{Username: ps.Username, FullName: ps.FullName}
			}
		case errors.Is(err, storage.ErrNotFound):
			// No prior session
		default:
			s.logger.Printf("session: load persisted token: %v", err)
		}
	}

	return s
}

// Set stores the token and user atomically. A nil user is allowed (the
// identity may not be known yet right after login).
func (s *Store) Set(token string, user *domain.UserProfile) {
	s.mu.Lock()
	s.token = token
	s.user = copyUser(user)
	s.mu.Unlock()

	s.save(token, user)
}

// SetUser attaches an identity to an existing session. Ignored if no
// token is present, preserving the token-before-user invariant.
func (s *Store) SetUser(user *domain.UserProfile) {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	token := s.token
	s.user = copyUser(user)
	s.mu.Unlock()

	s.save(token, user)
}

// Clear removes token and user atomically. It reports whether a session
// was actually dropped, which lets the unauthorized interceptor fire its
// broadcast exactly once even with concurrent in-flight faults.
func (s *Store) Clear() bool {
	s.mu.Lock()
	had := s.token != ""
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if had && s.persist != nil {
		if err := s.persist.Clear(context.Background()); err != nil {
			s.logger.Printf("session: clear persisted token: %v", err)
		}
	}
	return had
}

// Get returns a snapshot of the current session.
func (s *Store) Get() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Token: s.token, User: copyUser(s.user)}
}

// Token returns the current bearer token, or "" if none.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// HasToken reports whether a session is present. Cheap check used to
// gate UI state before any network call.
func (s *Store) HasToken() bool {
	return s.Token() != ""
}

// save writes through to persistent storage. Persistence failures are
// logged, never surfaced: the in-memory session stays authoritative.
func (s *Store) save(token string, user *domain.UserProfile) {
	if s.persist == nil || token == "" {
		return
	}

	ps := &storage.PersistedSession{Token: token, SavedAt: time.Now()}
	if user != nil {
		ps.Username = user.Username
		ps.FullName = user.FullName
	}
	if err := s.persist.Save(context.Background(), ps); err != nil {
		s.logger.Printf("session: persist token: %v", err)
	}
}

func copyUser(u *domain.UserProfile) *domain.UserProfile {
	if u == nil {
		return nil
	}
	userCopy := *u
	return &userCopy
}
