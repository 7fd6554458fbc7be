package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/invokta/onboarding/internal/domain/session"
	"github.com/invokta/onboarding/internal/ports"
)

const defaultInitTimeout = 10 * time.Second

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	API       ports.AuthAPI
	Store     ports.CredentialStore
	Stash     ports.PathStash
	Navigator ports.Navigator
	Decoder   ports.ClaimsDecoder
	Logger    *slog.Logger

	// Now is the clock used for expiry checks. Defaults to time.Now.
	Now func() time.Time

	// InitTimeout bounds Initialize so a hung store or auth service cannot
	// leave the client stuck in the authenticating state. Defaults to 10s.
	InitTimeout time.Duration
}

// SessionManager owns the authenticated-user lifecycle: login, registration,
// OAuth ingestion, token refresh, logout, and expiry-triggered
// re-authentication. It is the sole writer of the credential store and the
// pre-auth-path stash; consumers read snapshots.
//
// Operations may interleave when invoked concurrently; persisted writes are
// last-write-wins. Within one operation, store writes happen before the
// in-memory state is published, so observers never see an authenticated
// state whose token is not yet durable.
type SessionManager struct {
	api     ports.AuthAPI
	store   ports.CredentialStore
	stash   ports.PathStash
	nav     ports.Navigator
	decoder ports.ClaimsDecoder
	logger  *slog.Logger
	now     func() time.Time

	initTimeout time.Duration

	mu      sync.RWMutex
	state   session.State
	current *session.Session
	lastErr string
	busy    bool
}

// NewSessionManager constructs a SessionManager. The machine starts in the
// authenticating state; call Initialize to settle it.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	timeout := opts.InitTimeout
	if timeout <= 0 {
		timeout = defaultInitTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionManager{
		api:         opts.API,
		store:       opts.Store,
		stash:       opts.Stash,
		nav:         opts.Navigator,
		decoder:     opts.Decoder,
		logger:      logger,
		now:         now,
		initTimeout: timeout,
		state:       session.StateAuthenticating,
	}
}

// State returns the current authentication state.
func (m *SessionManager) State() session.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Busy reports whether an authentication operation is in flight. Every
// operation that sets it clears it on every exit path.
func (m *SessionManager) Busy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.busy
}

// Claims returns a copy of the current user claims, or false when no session
// is held.
func (m *SessionManager) Claims() (session.Claims, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return session.Claims{}, false
	}
	return m.current.Claims, true
}

// AuthResult returns the retained auth-service response for the current
// session, or nil when no session is held.
func (m *SessionManager) AuthResult() *session.AuthResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	return m.current.AuthResult
}

// LastError returns the last human-readable failure message. It is
// dismissible independently of the authentication state.
func (m *SessionManager) LastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// ClearError dismisses the last error message.
func (m *SessionManager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = ""
}

// Initialize settles the machine from persisted credentials. An absent token
// settles unauthenticated, an unexpired one authenticated, and an expired one
// goes through a refresh first. It always concludes in a non-authenticating
// state, bounded by the configured init timeout.
func (m *SessionManager) Initialize(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.initTimeout)
	defer cancel()

	m.begin()
	defer m.settle()

	token, err := m.store.Get(ctx, session.KeyToken)
	if errors.Is(err, ports.ErrNotFound) {
		m.publish(session.StateUnauthenticated, nil)
		return nil
	}
	if err != nil {
		m.publish(session.StateUnauthenticated, nil)
		return fmt.Errorf("read persisted token: %w", err)
	}

	claims, decErr := m.decoder.Decode(token)
	if decErr != nil {
		// Never trust an undecodable token; clear it out.
		m.logger.WarnContext(ctx, "persisted token undecodable, logging out", "error", decErr)
		if err := m.Logout(ctx); err != nil {
			return errors.Join(decErr, err)
		}
		return decErr
	}

	if claims.Expired(m.now()) {
		token, err = m.Refresh(ctx)
		if err != nil {
			// Refresh already forced a logout.
			return fmt.Errorf("refresh expired session: %w", err)
		}
		claims, decErr = m.decoder.Decode(token)
		if decErr != nil {
			if err := m.Logout(ctx); err != nil {
				return errors.Join(decErr, err)
			}
			return decErr
		}
	}

	m.publish(session.StateAuthenticated, &session.Session{
		AccessToken: token,
		Claims:      claims,
		AuthResult:  m.loadStoredAuthResult(ctx),
	})
	return nil
}

// Login authenticates with email and password. On failure the session is
// unchanged and the error slot holds the server message when one exists.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	m.ClearError()
	m.setBusy(true)
	defer m.setBusy(false)

	result, err := m.api.Authenticate(ctx, email, password)
	if err != nil {
		m.setError(session.ServerMessage(err, "Login failed"))
		return fmt.Errorf("authenticate: %w", err)
	}

	return m.acceptAuthResult(ctx, result)
}

// Register clears any stale persisted credentials, creates the account, and
// accepts the resulting session. A 2xx response without an access token is
// not treated as success.
func (m *SessionManager) Register(ctx context.Context, req session.RegistrationRequest) error {
	m.ClearError()
	m.setBusy(true)
	defer m.setBusy(false)

	if err := m.clearCredentials(ctx); err != nil {
		m.logger.WarnContext(ctx, "clear credentials before registration", "error", err)
	}

	result, err := m.api.Register(ctx, req)
	if err != nil {
		m.setError(session.ServerMessage(err, "Registration failed"))
		return fmt.Errorf("register: %w", err)
	}
	if result.AccessToken == "" {
		m.setError("Registration failed")
		return fmt.Errorf("register: %w: response missing access token", session.ErrMalformedPayload)
	}

	return m.acceptAuthResult(ctx, result)
}

// IngestOAuthResult accepts a URL-encoded JSON auth payload produced by an
// out-of-band OAuth redirect. It persists tokens and publishes the session
// but never navigates; redirection belongs to the caller, which knows which
// ingestion path is active. The busy indicator clears on every exit path.
func (m *SessionManager) IngestOAuthResult(ctx context.Context, rawPayload string) (session.Claims, error) {
	m.ClearError()
	m.setBusy(true)
	defer m.setBusy(false)

	result, err := decodeOAuthPayload(rawPayload)
	if err != nil {
		m.setError("Failed to process authentication")
		return session.Claims{}, err
	}

	if err := m.store.Set(ctx, session.KeyToken, result.AccessToken); err != nil {
		m.setError("Failed to process authentication")
		return session.Claims{}, fmt.Errorf("persist token: %w", err)
	}
	if err := m.persistAuthData(ctx, result); err != nil {
		m.setError("Failed to process authentication")
		return session.Claims{}, err
	}
	if result.RefreshToken != "" {
		if err := m.store.Set(ctx, session.KeyRefreshToken, result.RefreshToken); err != nil {
			m.setError("Failed to process authentication")
			return session.Claims{}, fmt.Errorf("persist refresh token: %w", err)
		}
	}

	claims, err := m.resolveClaims(ctx, result)
	if err != nil {
		m.setError("Failed to process authentication")
		return session.Claims{}, err
	}

	m.publish(session.StateAuthenticated, &session.Session{
		AccessToken: result.AccessToken,
		Claims:      claims,
		AuthResult:  result,
	})
	return claims, nil
}

// LoginWithGoogle ingests a Google auth payload through the shared accept
// routine, so it carries the business-redirect semantics: refresh token from
// the provider envelope, onboarding redirect for users without businesses.
func (m *SessionManager) LoginWithGoogle(ctx context.Context, rawPayload string) (session.Claims, error) {
	m.ClearError()
	m.setBusy(true)
	defer m.setBusy(false)

	result, err := decodeOAuthPayload(rawPayload)
	if err != nil {
		m.setError(session.ServerMessage(err, "Google login failed"))
		return session.Claims{}, err
	}

	if err := m.acceptAuthResult(ctx, result); err != nil {
		return session.Claims{}, err
	}

	claims, _ := m.Claims()
	return claims, nil
}

// Refresh exchanges the persisted refresh token for a new access token and
// persists the pair (rotation optional per server response). Any failure
// forces a logout before the error surfaces; retry policy belongs to the
// caller.
func (m *SessionManager) Refresh(ctx context.Context) (string, error) {
	refreshToken, err := m.store.Get(ctx, session.KeyRefreshToken)
	if errors.Is(err, ports.ErrNotFound) || (err == nil && refreshToken == "") {
		m.forceLogout(ctx)
		return "", session.ErrNoRefreshToken
	}
	if err != nil {
		m.forceLogout(ctx)
		return "", fmt.Errorf("read refresh token: %w", err)
	}

	pair, err := m.api.RefreshToken(ctx, refreshToken)
	if err != nil {
		m.setError(session.ServerMessage(err, "Session expired, please log in again"))
		m.forceLogout(ctx)
		return "", fmt.Errorf("refresh token: %w", err)
	}

	if err := m.store.Set(ctx, session.KeyToken, pair.AccessToken); err != nil {
		m.forceLogout(ctx)
		return "", fmt.Errorf("persist refreshed token: %w", err)
	}
	if pair.RefreshToken != "" {
		if err := m.store.Set(ctx, session.KeyRefreshToken, pair.RefreshToken); err != nil {
			m.forceLogout(ctx)
			return "", fmt.Errorf("persist rotated refresh token: %w", err)
		}
	}

	return pair.AccessToken, nil
}

// Logout clears all persisted credentials, publishes the unauthenticated
// state, and signals navigation to the login entry point. It is idempotent.
func (m *SessionManager) Logout(ctx context.Context) error {
	err := m.clearCredentials(ctx)
	m.publish(session.StateUnauthenticated, nil)
	m.nav.Navigate(session.RouteLogin)
	return err
}

// StashPreAuthPath remembers where an unauthenticated user was headed so the
// accept routine can return them there after login. Consumed at most once.
func (m *SessionManager) StashPreAuthPath(ctx context.Context, path string) error {
	return m.stash.Set(ctx, path)
}

// acceptAuthResult is the shared routine behind login, registration, and the
// Google ingestion path: persist, decode, publish, then route on
// business-affiliation completeness.
func (m *SessionManager) acceptAuthResult(ctx context.Context, result *session.AuthResult) error {
	if err := m.store.Set(ctx, session.KeyToken, result.AccessToken); err != nil {
		m.setError("Failed to process authentication")
		return fmt.Errorf("persist token: %w", err)
	}
	if err := m.persistAuthData(ctx, result); err != nil {
		m.setError("Failed to process authentication")
		return err
	}
	if result.InvoktaAuthentication != nil && result.InvoktaAuthentication.RefreshToken != "" {
		if err := m.store.Set(ctx, session.KeyRefreshToken, result.InvoktaAuthentication.RefreshToken); err != nil {
			m.setError("Failed to process authentication")
			return fmt.Errorf("persist refresh token: %w", err)
		}
	}

	claims, err := m.decoder.Decode(result.AccessToken)
	if err != nil {
		// Never leave the client half-authenticated on a bad token.
		m.setError("Failed to process authentication")
		m.forceLogout(ctx)
		return err
	}

	m.publish(session.StateAuthenticated, &session.Session{
		AccessToken: result.AccessToken,
		Claims:      claims,
		AuthResult:  result,
	})

	if !claims.HasBusinessDetails() {
		m.nav.Navigate(session.RouteBusinessSetup)
		return nil
	}

	target := session.RouteDashboard
	if stashed, err := m.stash.Get(ctx); err == nil && stashed != "" {
		target = session.Route(stashed)
		if err := m.stash.Clear(ctx); err != nil {
			m.logger.WarnContext(ctx, "clear pre-auth path", "error", err)
		}
	}
	m.nav.Navigate(target)
	return nil
}

// resolveClaims prefers explicit user details on the auth result and falls
// back to decoding the access token itself.
func (m *SessionManager) resolveClaims(ctx context.Context, result *session.AuthResult) (session.Claims, error) {
	if result.UserDetails != nil {
		return *result.UserDetails, nil
	}
	claims, err := m.decoder.Decode(result.AccessToken)
	if err != nil {
		m.forceLogout(ctx)
		return session.Claims{}, err
	}
	return claims, nil
}

func (m *SessionManager) persistAuthData(ctx context.Context, result *session.AuthResult) error {
	encoded, err := result.Encoded()
	if err != nil {
		return fmt.Errorf("encode auth result: %w", err)
	}
	if err := m.store.Set(ctx, session.KeyAuthData, encoded); err != nil {
		return fmt.Errorf("persist auth result: %w", err)
	}
	return nil
}

// loadStoredAuthResult restores the verbatim auth response persisted next to
// the token. An unparseable or absent record degrades to nil; the session
// remains usable from claims alone.
func (m *SessionManager) loadStoredAuthResult(ctx context.Context) *session.AuthResult {
	raw, err := m.store.Get(ctx, session.KeyAuthData)
	if err != nil || raw == "" {
		return nil
	}
	var result session.AuthResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		m.logger.WarnContext(ctx, "stored auth result unparseable, ignoring", "error", err)
		return nil
	}
	result.Raw = json.RawMessage(raw)
	return &result
}

func (m *SessionManager) clearCredentials(ctx context.Context) error {
	return errors.Join(
		m.store.Delete(ctx, session.KeyToken),
		m.store.Delete(ctx, session.KeyRefreshToken),
		m.store.Delete(ctx, session.KeyAuthData),
	)
}

// forceLogout is Logout with the error logged instead of returned, for
// failure paths that already carry a more meaningful error.
func (m *SessionManager) forceLogout(ctx context.Context) {
	if err := m.Logout(ctx); err != nil {
		m.logger.WarnContext(ctx, "clear credentials on logout", "error", err)
	}
}

func decodeOAuthPayload(rawPayload string) (*session.AuthResult, error) {
	if rawPayload == "" {
		return nil, fmt.Errorf("%w: empty payload", session.ErrMalformedPayload)
	}
	decoded, err := url.QueryUnescape(rawPayload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", session.ErrMalformedPayload, err)
	}
	var result session.AuthResult
	if err := json.Unmarshal([]byte(decoded), &result); err != nil {
		return nil, fmt.Errorf("%w: %w", session.ErrMalformedPayload, err)
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing access token", session.ErrMalformedPayload)
	}
	result.Raw = json.RawMessage(decoded)
	return &result, nil
}

func (m *SessionManager) begin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = true
	m.state = session.StateAuthenticating
}

// settle guarantees Initialize never concludes in the authenticating state,
// whatever exit path was taken.
func (m *SessionManager) settle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = false
	if m.state == session.StateAuthenticating {
		m.state = session.StateUnauthenticated
	}
}

func (m *SessionManager) setBusy(busy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.busy = busy
}

// setError records a dismissible message. The machine moves to the error
// state only when no session is held; an established session survives a
// failed operation untouched.
func (m *SessionManager) setError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = msg
	if m.current == nil && m.state != session.StateAuthenticating {
		m.state = session.StateError
	}
}

// publish installs the new state. Callers must have completed all persisted
// writes for the transition before calling.
func (m *SessionManager) publish(state session.State, sess *session.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.current = sess
}
