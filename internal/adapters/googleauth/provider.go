package googleauth

// Package googleauth is the out-of-band Google OAuth collaborator. It owns
// the redirect flow the session manager deliberately stays out of: building
// the consent URL, exchanging the callback code, verifying the ID token, and
// shaping the URL-encoded auth payload that IngestOAuthResult consumes.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"github.com/google/uuid"
	"github.com/invokta/onboarding/internal/domain/session"
	"github.com/invokta/onboarding/internal/ports"
	"golang.org/x/oauth2"
)

const defaultIssuer = "https://accounts.google.com"

// ProviderConfig holds configuration for the Google OAuth provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string       // space-separated, defaults to "openid profile email"
	Issuer       string       // defaults to the Google issuer
	HTTPClient   *http.Client // optional, defaults to a 30s-timeout client
}

// Provider runs the authorization-code flow against Google.
type Provider struct {
	config   *oauth2.Config
	verifier *gooidc.IDTokenVerifier

	mu      sync.Mutex
	pending map[string]string // state -> nonce
}

// NewProvider creates a Google OAuth provider, fetching the discovery
// document once.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}
	scope := cfg.Scope
	if scope == "" {
		scope = "openid profile email"
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       strings.Fields(scope),
			Endpoint:     provider.Endpoint(),
		},
		verifier: provider.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		pending:  make(map[string]string),
	}, nil
}

// Begin returns the consent URL and the opaque state the callback must echo.
func (p *Provider) Begin(_ context.Context) (authURL, state string, err error) {
	state = uuid.NewString()
	nonce := uuid.NewString()

	p.mu.Lock()
	p.pending[state] = nonce
	p.mu.Unlock()

	authURL = p.config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return authURL, state, nil
}

// Exchange completes the flow: verifies state and nonce, exchanges the code,
// verifies the ID token, and returns the URL-encoded auth payload for
// session ingestion.
func (p *Provider) Exchange(ctx context.Context, code, state string) (string, error) {
	if code == "" {
		return "", errors.New("authorization code is required")
	}

	p.mu.Lock()
	nonce, ok := p.pending[state]
	delete(p.pending, state)
	p.mu.Unlock()
	if !ok {
		return "", errors.New("unknown or replayed state")
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.New("token response missing id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	if idToken.Nonce != nonce {
		return "", errors.New("nonce mismatch")
	}

	var idClaims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Expiry  int64  `json:"exp"`
	}
	if err := idToken.Claims(&idClaims); err != nil {
		return "", fmt.Errorf("decode id token claims: %w", err)
	}

	result := session.AuthResult{
		AccessToken:  rawIDToken,
		RefreshToken: token.RefreshToken,
		UserDetails: &session.Claims{
			Subject:   idClaims.Subject,
			Email:     idClaims.Email,
			Name:      idClaims.Name,
			ExpiresAt: idClaims.Expiry,
		},
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode auth payload: %w", err)
	}
	return url.QueryEscape(string(payload)), nil
}

// PayloadFromRedirect extracts the backend-produced auth payload from a
// redirect query string (the authResponse parameter), for the ingestion path
// where the server wrapped the Google tokens itself.
func PayloadFromRedirect(rawQuery string) (string, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("%w: %w", session.ErrMalformedPayload, err)
	}
	payload := values.Get("authResponse")
	if payload == "" {
		return "", fmt.Errorf("%w: missing authResponse parameter", session.ErrMalformedPayload)
	}
	// ParseQuery already unescaped the component; re-escape so ingestion
	// always receives the same URL-encoded shape.
	return url.QueryEscape(payload), nil
}

// Ingestor is the session operation a completed callback hands its payload
// to. Ingestion persists and publishes the session without navigating.
type Ingestor interface {
	IngestOAuthResult(ctx context.Context, rawPayload string) (session.Claims, error)
}

// CompleteCallback handles a redirect query end to end: extracts the payload,
// ingests it, then decides the follow-up route. The redirect decision lives
// here because the session manager stays navigation-free on this path.
func CompleteCallback(ctx context.Context, ingest Ingestor, nav ports.Navigator, rawQuery string) (session.Claims, error) {
	payload, err := PayloadFromRedirect(rawQuery)
	if err != nil {
		return session.Claims{}, err
	}

	claims, err := ingest.IngestOAuthResult(ctx, payload)
	if err != nil {
		return session.Claims{}, err
	}

	if !claims.HasBusinessDetails() {
		nav.Navigate(session.RouteBusinessSetup)
	} else {
		nav.Navigate(session.RouteDashboard)
	}
	return claims, nil
}
