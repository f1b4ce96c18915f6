// Package sqlite provides a SQLite-backed TokenStorage so the session
// token survives process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fraudwatch-client/internal/storage"

	_ "modernc.org/sqlite"
)

// TokenStore implements storage.TokenStorage using SQLite.
// The table holds at most one row; Save replaces it.
type TokenStore struct {
	db *sql.DB
}

// NewTokenStore opens (or creates) the database at dbPath and initializes
// the schema.
func NewTokenStore(dbPath string) (*TokenStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode keeps concurrent readers from blocking the writer.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &TokenStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

func (s *TokenStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		username TEXT NOT NULL DEFAULT '',
		full_name TEXT NOT NULL DEFAULT '',
		saved_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Load returns the persisted session, or storage.ErrNotFound if none exists.
func (s *TokenStore) Load(ctx context.Context) (*storage.PersistedSession, error) {
	query := `SELECT token, username, full_name, saved_at FROM session WHERE id = 1`

	var ps storage.PersistedSession
	var savedAt int64
	err := s.db.QueryRowContext(ctx, query).Scan(&ps.Token, &ps.Username, &ps.FullName, &savedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	ps.SavedAt = time.Unix(savedAt, 0)
	return &ps, nil
}

// Save replaces any persisted session with the given one.
func (s *TokenStore) Save(ctx context.Context, ps *storage.PersistedSession) error {
	if ps == nil || ps.Token == "" {
		return storage.ErrInvalidInput
	}

	savedAt := ps.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	query := `
	INSERT INTO session (id, token, username, full_name, saved_at)
	VALUES (1, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		token = excluded.token,
		username = excluded.username,
		full_name = excluded.full_name,
		saved_at = excluded.saved_at
	`
	if _, err := s.db.ExecContext(ctx, query, ps.Token, ps.Username, ps.FullName, savedAt.Unix()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the persisted session.
func (s *TokenStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *TokenStore) Close() error {
	return s.db.Close()
}
