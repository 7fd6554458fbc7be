package session

// Package session contains domain-level types for the authenticated-user
// lifecycle. It is pure and free of transport/storage concerns.

import (
	"encoding/json"
	"time"
)

// State represents the session manager's authentication state.
type State string

const (
	// StateUnauthenticated means no valid session is held.
	StateUnauthenticated State = "unauthenticated"
	// StateAuthenticating means persisted credentials are being checked or
	// an authentication operation is in flight.
	StateAuthenticating State = "authenticating"
	// StateAuthenticated means a decoded, unexpired session is held.
	StateAuthenticated State = "authenticated"
	// StateError means the last authentication attempt failed and no
	// session is held. The reason lives in the manager's error slot.
	StateError State = "error"
)

// Route identifies a navigation destination by symbolic name. The session
// manager signals routes to a Navigator; it never navigates itself.
type Route string

const (
	RouteLogin         Route = "/login"
	RouteBusinessSetup Route = "/business-setup"
	RouteDashboard     Route = "/dashboard"
)

// Credential store keys. The store must survive process restarts within the
// same client installation.
const (
	KeyToken           = "token"
	KeyRefreshToken    = "refreshToken"
	KeyAuthData        = "authData"
	KeyBusinessDetails = "businessDetails"
)

// Business is a user-to-business affiliation carried in access-token claims.
// An empty affiliation list gates the onboarding (business-setup) redirect.
type Business struct {
	ID   string `json:"businessId"`
	Name string `json:"businessName"`
}

// Claims is the decoded payload of an access token. Tokens that fail to
// decode into this shape are treated as invalid, never as anonymous-but-valid.
type Claims struct {
	Subject    string     `json:"sub"`
	Email      string     `json:"email"`
	Name       string     `json:"name,omitempty"`
	ExpiresAt  int64      `json:"exp"`
	Businesses []Business `json:"businesses"`
}

// Expiry returns the absolute expiry time of the claims.
func (c Claims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}

// Expired reports whether the claims have expired as of now.
func (c Claims) Expired(now time.Time) bool {
	return c.Expiry().Before(now)
}

// HasBusinessDetails reports whether the user carries at least one business
// affiliation. Users without one are routed to business setup.
func (c Claims) HasBusinessDetails() bool {
	return len(c.Businesses) > 0
}

// ProviderAuthentication is the provider-specific envelope some auth
// responses nest a refresh token under.
type ProviderAuthentication struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// AuthResult is the full response from the remote auth service. Raw retains
// the verbatim response body so fields not modeled here remain available to
// collaborators across restarts.
type AuthResult struct {
	AccessToken           string                  `json:"accessToken"`
	RefreshToken          string                  `json:"refreshToken,omitempty"`
	UserDetails           *Claims                 `json:"userDetails,omitempty"`
	InvoktaAuthentication *ProviderAuthentication `json:"invoktaAuthentication,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// Encoded returns the serialized form of the auth result for persistence,
// preferring the verbatim body when one was captured.
func (r *AuthResult) Encoded() (string, error) {
	if len(r.Raw) > 0 {
		return string(r.Raw), nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TokenPair is the response of the refresh endpoint. RefreshToken is empty
// when the server did not rotate it.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Session is the in-memory authenticated state. It is owned exclusively by
// the session manager; consumers receive copies.
type Session struct {
	AccessToken string
	Claims      Claims
	AuthResult  *AuthResult
}

// RegistrationRequest carries the fields of the register endpoint.
type RegistrationRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
