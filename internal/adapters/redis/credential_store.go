package redis

// Package redis provides a Redis-backed credential store for deployments
// where the onboarding client runs behind a shared cache (kiosk fleets,
// embedded browser shells).

import (
	"context"
	"errors"
	"fmt"

	"github.com/invokta/onboarding/internal/ports"
	"github.com/redis/go-redis/v9"
)

// CredentialStore persists credentials in Redis under a common key prefix.
// Entries have no TTL; token expiry is read from claims, not from the store.
type CredentialStore struct {
	client redis.UniversalClient
	prefix string
}

// NewCredentialStore creates a Redis-backed credential store.
func NewCredentialStore(client redis.UniversalClient) *CredentialStore {
	return &CredentialStore{client: client, prefix: "credentials:"}
}

// NewCredentialStoreWithPrefix creates a store with a custom key prefix, so
// multiple client installations can share one Redis.
func NewCredentialStoreWithPrefix(client redis.UniversalClient, prefix string) *CredentialStore {
	return &CredentialStore{client: client, prefix: prefix}
}

func (s *CredentialStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", errors.New("key cannot be empty")
	}

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

func (s *CredentialStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *CredentialStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to delete
	}

	return s.client.Del(ctx, s.prefix+key).Err()
}
