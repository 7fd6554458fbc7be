package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/invokta/onboarding/config"
	"github.com/invokta/onboarding/internal/adapters/authapi"
	"github.com/invokta/onboarding/internal/adapters/jwtclaims"
	"github.com/invokta/onboarding/internal/adapters/memstore"
	"github.com/invokta/onboarding/internal/adapters/postgres"
	redisadapter "github.com/invokta/onboarding/internal/adapters/redis"
	"github.com/invokta/onboarding/internal/adapters/sqlite"
	"github.com/invokta/onboarding/internal/ports"
	"github.com/invokta/onboarding/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// SessionDeps contains configuration for building the session manager.
type SessionDeps struct {
	Config    config.AppConfig
	Store     ports.CredentialStore
	Navigator ports.Navigator
	Logger    *slog.Logger
}

// BuildCredentialStore creates the credential store selected by
// configuration. The returned closer releases backend resources and may be
// nil for backends without any.
func BuildCredentialStore(ctx context.Context, cfg config.StoreConfig) (ports.CredentialStore, func() error, error) {
	switch cfg.Mode {
	case config.StoreModeMemory:
		return memstore.NewCredentialStore(), nil, nil

	case config.StoreModeSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite credential store: %w", err)
		}
		return store, store.Close, nil

	case config.StoreModeRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		prefix := cfg.Redis.KeyPrefix + installationID(cfg) + ":"
		return redisadapter.NewCredentialStoreWithPrefix(client, prefix), client.Close, nil

	case config.StoreModePostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store, err := postgres.NewCredentialStore(ctx, pool, installationID(cfg))
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, func() error { pool.Close(); return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store mode %q", cfg.Mode)
	}
}

// installationID returns the configured installation scope, generating one
// when unset so shared backends never mix credentials between clients.
func installationID(cfg config.StoreConfig) string {
	if cfg.InstallationID != "" {
		return cfg.InstallationID
	}
	return uuid.NewString()
}

// BuildSessionManager wires the session manager from configuration. The
// machine starts in the authenticating state; callers run Initialize to
// settle it from persisted credentials.
func BuildSessionManager(deps SessionDeps) (*service.SessionManager, error) {
	api, err := authapi.NewClient(authapi.ClientConfig{
		BaseURL:       deps.Config.Auth.BaseURL,
		RefreshHeader: deps.Config.Auth.RefreshHeader,
		Timeout:       deps.Config.Auth.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build auth client: %w", err)
	}

	return service.NewSessionManager(service.SessionManagerOptions{
		API:         api,
		Store:       deps.Store,
		Stash:       memstore.NewPathStash(),
		Navigator:   deps.Navigator,
		Decoder:     jwtclaims.NewDecoder(),
		Logger:      deps.Logger,
		InitTimeout: deps.Config.Auth.InitTimeout,
	}), nil
}
