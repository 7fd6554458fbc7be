package ports

// Package ports defines interfaces (hexagonal ports) for the onboarding
// client. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"
	"errors"

	"github.com/invokta/onboarding/internal/domain/session"
)

// ErrNotFound is returned by CredentialStore.Get when no value is persisted
// under the requested key.
var ErrNotFound = errors.New("credential not found")

// AuthAPI is the remote auth service. All trust decisions and token
// validation live on the server behind it.
type AuthAPI interface {
	// Authenticate exchanges email/password for an auth result.
	Authenticate(ctx context.Context, email, password string) (*session.AuthResult, error)

	// Register creates an account and returns its auth result.
	Register(ctx context.Context, req session.RegistrationRequest) (*session.AuthResult, error)

	// RefreshToken exchanges a refresh token for a new token pair. The
	// refresh token travels in a request header so the endpoint is callable
	// without a valid access token.
	RefreshToken(ctx context.Context, refreshToken string) (*session.TokenPair, error)
}

// CredentialStore is durable key-value storage surviving process restarts
// within the same client installation.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// PathStash holds at most one pre-auth path for the current process
// lifetime. It is consumed at most once and cleared on restart.
type PathStash interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, path string) error
	Clear(ctx context.Context) error
}

// Navigator receives symbolic navigation targets. The session manager never
// performs navigation itself.
type Navigator interface {
	Navigate(route session.Route)
}

// ClaimsDecoder decodes an access token's claims without trusting
// undecodable tokens as anonymous-but-valid.
type ClaimsDecoder interface {
	Decode(token string) (session.Claims, error)
}
