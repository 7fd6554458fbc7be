package redis

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/invokta/onboarding/internal/ports"
	"github.com/invokta/onboarding/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a store with a per-test prefix so parallel packages
// sharing one Redis never collide. Skips when Redis is unavailable.
func newTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	client := testutil.SetupTestRedis(t)
	return NewCredentialStoreWithPrefix(client, "test:"+uuid.NewString()+":")
}

func TestCredentialStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Get(ctx, "token")
	require.ErrorIs(t, err, ports.ErrNotFound)

	require.NoError(t, store.Set(ctx, "token", "value-1"))
	got, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "value-1", got)

	require.NoError(t, store.Set(ctx, "token", "value-2"))
	got, err = store.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "value-2", got)

	require.NoError(t, store.Delete(ctx, "token"))
	_, err = store.Get(ctx, "token")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCredentialStore_PrefixIsolation(t *testing.T) {
	ctx := context.Background()
	client := testutil.SetupTestRedis(t)

	a := NewCredentialStoreWithPrefix(client, "test:install-a:")
	b := NewCredentialStoreWithPrefix(client, "test:install-b:")

	require.NoError(t, a.Set(ctx, "token", "from-a"))
	t.Cleanup(func() { _ = a.Delete(ctx, "token") })

	_, err := b.Get(ctx, "token")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCredentialStore_EmptyKey(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Get(ctx, "")
	require.Error(t, err)
	require.Error(t, store.Set(ctx, "", "v"))
	require.NoError(t, store.Delete(ctx, ""))
}
