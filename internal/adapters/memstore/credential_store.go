package memstore

// Package memstore provides in-memory implementations of the credential
// store and the pre-auth-path stash. The store backs tests and the
// STORE_MODE=memory configuration; the stash is the process-scoped slot the
// session manager consumes at most once.

import (
	"context"
	"sync"

	"github.com/invokta/onboarding/internal/ports"
)

// CredentialStore is a process-lifetime key-value store. It does not survive
// restarts; durable deployments use the sqlite, redis, or postgres adapters.
type CredentialStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewCredentialStore creates an empty in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{values: make(map[string]string)}
}

func (s *CredentialStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", ports.ErrNotFound
	}
	return value, nil
}

func (s *CredentialStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *CredentialStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len reports the number of stored keys. Test helper.
func (s *CredentialStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
