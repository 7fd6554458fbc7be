package postgres

// Package postgres provides a Postgres-backed credential store for
// server-assisted deployments where per-installation credentials live in a
// central database.

import (
	"context"
	"errors"
	"fmt"

	"github.com/invokta/onboarding/internal/ports"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS credentials (
	installation_id TEXT NOT NULL,
	key             TEXT NOT NULL,
	value           TEXT NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (installation_id, key)
);`

// CredentialStore persists credentials in Postgres, scoped per client
// installation so one database serves many clients.
type CredentialStore struct {
	pool           *pgxpool.Pool
	installationID string
}

// NewCredentialStore creates a Postgres credential store for the given
// installation and ensures its schema.
func NewCredentialStore(ctx context.Context, pool *pgxpool.Pool, installationID string) (*CredentialStore, error) {
	if installationID == "" {
		return nil, errors.New("installation ID is required")
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("create credentials schema: %w", err)
	}
	return &CredentialStore{pool: pool, installationID: installationID}, nil
}

func (s *CredentialStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("key cannot be empty")
	}

	var value string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM credentials WHERE installation_id = $1 AND key = $2`,
		s.installationID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
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

	err := s.upsert(ctx, key, value)
	// Concurrent first-writes can race the upsert into a unique violation;
	// a single retry resolves it as a plain update.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		err = s.upsert(ctx, key, value)
	}
	if err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) upsert(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO credentials (installation_id, key, value, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (installation_id, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		s.installationID, key, value)
	return err
}

func (s *CredentialStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to delete
	}

	_, err := s.pool.Exec(ctx,
		`DELETE FROM credentials WHERE installation_id = $1 AND key = $2`,
		s.installationID, key)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
