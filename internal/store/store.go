// Package store persists the client's durable state in a small SQLite
// database: the token pair and the cached user profile, each under a fixed
// key. Logout and refresh failure wipe the whole table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/creamcroissant/shopfront/internal/session"
)

// Fixed keys for the persisted client state.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserProfile  = "user_profile"
)

// ErrNotFound indicates the key has no stored value.
var ErrNotFound = errors.New("store: not found")

// Store is the SQLite-backed client state store. It implements session.Store.
type Store struct {
	db *sql.DB
}

var _ session.Store = (*Store)(nil)

// Open ensures the parent directory exists, opens the database with sane
// pragmas and migrates the schema to the latest version.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("state database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_busy_timeout=30000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping state db: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate state db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM client_state WHERE key = ?`
	var value string
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set upserts the value stored under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	const stmt = `INSERT INTO client_state(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
                  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := s.db.ExecContext(ctx, stmt, key, value)
	return err
}

// Delete removes key if present.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, key)
	return err
}

// Keys lists every stored key, for diagnostics and tests.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM client_state ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// SaveCredentials implements session.Store.
func (s *Store) SaveCredentials(ctx context.Context, creds session.Credentials) error {
	if err := s.Set(ctx, KeyAccessToken, creds.AccessToken); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	if err := s.Set(ctx, KeyRefreshToken, creds.RefreshToken); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// LoadCredentials implements session.Store. Missing keys load as empty.
func (s *Store) LoadCredentials(ctx context.Context) (session.Credentials, error) {
	var creds session.Credentials
	access, err := s.Get(ctx, KeyAccessToken)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return session.Credentials{}, fmt.Errorf("load access token: %w", err)
	}
	refresh, err := s.Get(ctx, KeyRefreshToken)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return session.Credentials{}, fmt.Errorf("load refresh token: %w", err)
	}
	creds.AccessToken = access
	creds.RefreshToken = refresh
	return creds, nil
}

// SaveProfile implements session.Store.
func (s *Store) SaveProfile(ctx context.Context, profile []byte) error {
	return s.Set(ctx, KeyUserProfile, string(profile))
}

// LoadProfile implements session.Store. A missing profile loads as nil.
func (s *Store) LoadProfile(ctx context.Context) ([]byte, error) {
	value, err := s.Get(ctx, KeyUserProfile)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Clear implements session.Store: drops every stored key.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM client_state`)
	return err
}
