// Package testutil provides shared test helpers for the onboarding client.
package testutil

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestingTB is the subset of testing.TB the helpers need.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Skipf(format string, args ...any)
	Logf(format string, args ...any)
	Cleanup(func())
}

// FixedTimeFunc returns a clock pinned to the given time.
func FixedTimeFunc(t time.Time) func() time.Time {
	return func() time.Time {
		return t
	}
}

// TestTime returns a fixed time for testing.
func TestTime() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

// SetupTestRedis creates a Redis client for integration tests, skipping when
// no server is reachable. The address comes from TEST_REDIS_ADDR, defaulting
// to localhost:6379.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("close redis client after ping failure: %v", cerr)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("close redis client: %v", err)
		}
	})
	return client
}
