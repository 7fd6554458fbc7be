package sqlite

// Package sqlite provides the durable on-disk credential store, the default
// for a single-machine client installation. It is the localStorage analogue:
// a small key-value table surviving process restarts.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/invokta/onboarding/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS credentials (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// CredentialStore is a SQLite-backed credential store.
type CredentialStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the credential database at path and
// ensures its schema. Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*CredentialStore, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open credential database: %w", err)
	}
	// The store is single-writer; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("create credentials schema: %w", err), closeErr)
	}

	return &CredentialStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *CredentialStore) Close() error {
	return s.db.Close()
}

func (s *CredentialStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("key cannot be empty")
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ports.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return value, nil
}

func (s *CredentialStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to delete
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
