package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/invokta/onboarding/internal/adapters/jwtclaims"
	"github.com/invokta/onboarding/internal/adapters/memstore"
	"github.com/invokta/onboarding/internal/domain/session"
	"github.com/invokta/onboarding/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type sessionFixture struct {
	api   *mocks.MockAuthAPI
	nav   *mocks.MockNavigator
	store *memstore.CredentialStore
	stash *memstore.PathStash
	mgr   *SessionManager
}

// newSessionFixture creates mock collaborators and a manager pinned to a
// fixed clock.
func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &sessionFixture{
		api:   mocks.NewMockAuthAPI(ctrl),
		nav:   mocks.NewMockNavigator(ctrl),
		store: memstore.NewCredentialStore(),
		stash: memstore.NewPathStash(),
	}
	f.mgr = NewSessionManager(SessionManagerOptions{
		API:       f.api,
		Store:     f.store,
		Stash:     f.stash,
		Navigator: f.nav,
		Decoder:   jwtclaims.NewDecoder(),
		Now:       func() time.Time { return testNow },
	})
	return f
}

// testToken builds an unsigned JWT whose payload is the given claims. The
// decoder never verifies signatures, so a junk signature segment suffices.
func testToken(t *testing.T, claims session.Claims) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	body := base64.RawURLEncoding.EncodeToString(payload)
	return header + "." + body + ".c2ln"
}

func validClaims(businesses ...session.Business) session.Claims {
	return session.Claims{
		Subject:    "user-1",
		Email:      "user@example.com",
		Name:       "Test User",
		ExpiresAt:  testNow.Add(time.Hour).Unix(),
		Businesses: businesses,
	}
}

func encodePayload(t *testing.T, result session.AuthResult) string {
	t.Helper()
	data, err := json.Marshal(result)
	require.NoError(t, err)
	return url.QueryEscape(string(data))
}

func TestSessionManager_Initialize_NoToken(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	// No API expectations: absent credentials must not trigger network calls.
	require.NoError(t, f.mgr.Initialize(context.Background()))

	assert.Equal(t, session.StateUnauthenticated, f.mgr.State())
	assert.False(t, f.mgr.Busy())
	_, ok := f.mgr.Claims()
	assert.False(t, ok)
}

func TestSessionManager_Initialize_ValidToken(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	token := testToken(t, validClaims(session.Business{ID: "b1", Name: "Acme"}))
	require.NoError(t, f.store.Set(ctx, session.KeyToken, token))

	require.NoError(t, f.mgr.Initialize(ctx))

	assert.Equal(t, session.StateAuthenticated, f.mgr.State())
	claims, ok := f.mgr.Claims()
	require.True(t, ok)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.True(t, claims.HasBusinessDetails())
}

func TestSessionManager_Initialize_UndecodableToken(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, session.KeyToken, "not-a-jwt"))
	require.NoError(t, f.store.Set(ctx, session.KeyRefreshToken, "refresh-1"))
	f.nav.EXPECT().Navigate(session.RouteLogin)

	err := f.mgr.Initialize(ctx)
	require.ErrorIs(t, err, session.ErrTokenDecode)

	assert.Equal(t, session.StateUnauthenticated, f.mgr.State())
	assert.False(t, f.mgr.Busy())
	assert.Equal(t, 0, f.store.Len(), "logout must clear all persisted credentials")
}

func TestSessionManager_Initialize_ExpiredTokenRefreshes(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	expired := validClaims()
	expired.ExpiresAt = testNow.Add(-time.Minute).Unix()
	require.NoError(t, f.store.Set(ctx, session.KeyToken, testToken(t, expired)))
	require.NoError(t, f.store.Set(ctx, session.KeyRefreshToken, "refresh-1"))

	freshToken := testToken(t, validClaims())
	f.api.EXPECT().
		RefreshToken(gomock.Any(), "refresh-1").
		Return(&session.TokenPair{AccessToken: freshToken}, nil)

	require.NoError(t, f.mgr.Initialize(ctx))

	assert.Equal(t, session.StateAuthenticated, f.mgr.State())
	stored, err := f.store.Get(ctx, session.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, freshToken, stored)

	// No rotation in the response leaves the refresh token unchanged.
	refresh, err := f.store.Get(ctx, session.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", refresh)
}

func TestSessionManager_Initialize_UnexpiredTokenSkipsRefresh(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, session.KeyToken, testToken(t, validClaims())))
	require.NoError(t, f.store.Set(ctx, session.KeyRefreshToken, "refresh-1"))

	// No RefreshToken expectation: an unexpired token must settle locally.
	require.NoError(t, f.mgr.Initialize(ctx))
	assert.Equal(t, session.StateAuthenticated, f.mgr.State())
}

func TestSessionManager_Login_NoBusinesses_RoutesToSetup(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	token := testToken(t, validClaims())
	f.api.EXPECT().
		Authenticate(gomock.Any(), "user@example.com", "pw").
		Return(&session.AuthResult{
			AccessToken:           token,
			InvoktaAuthentication: &session.ProviderAuthentication{RefreshToken: "refresh-1"},
		}, nil)
	f.nav.EXPECT().Navigate(session.RouteBusinessSetup)

	require.NoError(t, f.mgr.Login(ctx, "user@example.com", "pw"))

	assert.Equal(t, session.StateAuthenticated, f.mgr.State())
	assert.False(t, f.mgr.Busy())

	refresh, err := f.store.Get(ctx, session.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", refresh)
}

func TestSessionManager_Login_WithBusiness_ConsumesStashedPath(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.mgr.StashPreAuthPath(ctx, "/invoices"))

	token := testToken(t, validClaims(session.Business{ID: "b1", Name: "Acme"}))
	f.api.EXPECT().
		Authenticate(gomock.Any(), "user@example.com", "pw").
		Return(&session.AuthResult{AccessToken: token}, nil)
	f.nav.EXPECT().Navigate(session.Route("/invoices"))

	require.NoError(t, f.mgr.Login(ctx, "user@example.com", "pw"))

	stashed, err := f.stash.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, stashed, "stashed path is consumed at most once")
}

func TestSessionManager_Login_WithBusiness_DefaultsToDashboard(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	token := testToken(t, validClaims(session.Business{ID: "b1", Name: "Acme"}))
	f.api.EXPECT().
		Authenticate(gomock.Any(), "user@example.com", "pw").
		Return(&session.AuthResult{AccessToken: token}, nil)
	f.nav.EXPECT().Navigate(session.RouteDashboard)

	require.NoError(t, f.mgr.Login(context.Background(), "user@example.com", "pw"))
}

func TestSessionManager_Login_RemoteFailure(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	require.NoError(t, f.mgr.Initialize(context.Background()))

	f.api.EXPECT().
		Authenticate(gomock.Any(), "user@example.com", "bad").
		Return(nil, &session.RemoteError{StatusCode: 401, Message: "Invalid credentials"})

	err := f.mgr.Login(context.Background(), "user@example.com", "bad")
	require.Error(t, err)

	assert.Equal(t, "Invalid credentials", f.mgr.LastError())
	assert.Equal(t, session.StateError, f.mgr.State())
	assert.False(t, f.mgr.Busy())

	f.mgr.ClearError()
	assert.Empty(t, f.mgr.LastError())
}

func TestSessionManager_Login_FailureLeavesExistingSession(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, session.KeyToken, testToken(t, validClaims())))
	require.NoError(t, f.mgr.Initialize(ctx))
	require.Equal(t, session.StateAuthenticated, f.mgr.State())

	f.api.EXPECT().
		Authenticate(gomock.Any(), "other@example.com", "pw").
		Return(nil, errors.New("network down"))

	require.Error(t, f.mgr.Login(ctx, "other@example.com", "pw"))

	// An established session survives a failed re-login attempt.
	assert.Equal(t, session.StateAuthenticated, f.mgr.State())
	assert.Equal(t, "Login failed", f.mgr.LastError())
}

func TestSessionManager_Register_Success(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	// Stale credentials from a previous account must be cleared first.
	require.NoError(t, f.store.Set(ctx, session.KeyToken, "stale"))
	require.NoError(t, f.store.Set(ctx, session.KeyRefreshToken, "stale-refresh"))

	token := testToken(t, validClaims())
	req := session.RegistrationRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     "user@example.com",
		Password:  "pw",
	}
	f.api.EXPECT().
		Register(gomock.Any(), req).
		Return(&session.AuthResult{AccessToken: token}, nil)
	f.nav.EXPECT().Navigate(session.RouteBusinessSetup)

	require.NoError(t, f.mgr.Register(ctx, req))

	assert.Equal(t, session.StateAuthenticated, f.mgr.State())
	stored, err := f.store.Get(ctx, session.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestSessionManager_Register_MissingAccessToken(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	f.api.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		Return(&session.AuthResult{}, nil)

	err := f.mgr.Register(context.Background(), session.RegistrationRequest{Email: "user@example.com"})
	require.ErrorIs(t, err, session.ErrMalformedPayload)

	assert.NotEqual(t, session.StateAuthenticated, f.mgr.State())
	assert.Equal(t, "Registration failed", f.mgr.LastError())
}

func TestSessionManager_IngestOAuthResult_Success(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	token := testToken(t, validClaims())
	payload := encodePayload(t, session.AuthResult{
		AccessToken:  token,
		RefreshToken: "refresh-oauth",
	})

	// No Navigate expectation: ingestion never redirects.
	claims, err := f.mgr.IngestOAuthResult(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)

	assert.Equal(t, session.StateAuthenticated, f.mgr.State())
	assert.False(t, f.mgr.Busy())

	refresh, err := f.store.Get(ctx, session.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-oauth", refresh)
}

func TestSessionManager_IngestOAuthResult_MalformedPayload(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	for name, payload := range map[string]string{
		"empty":          "",
		"not json":       url.QueryEscape("%%%not json"),
		"missing token":  url.QueryEscape(`{"refreshToken":"r"}`),
		"bad urlencoded": "%zz",
	} {
		_, err := f.mgr.IngestOAuthResult(context.Background(), payload)
		require.ErrorIs(t, err, session.ErrMalformedPayload, name)
		assert.False(t, f.mgr.Busy(), name)
	}

	// Session state is untouched by malformed input.
	assert.NotEqual(t, session.StateAuthenticated, f.mgr.State())
	assert.Equal(t, 0, f.store.Len())
}

func TestSessionManager_IngestOAuthResult_PrefersUserDetails(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	details := validClaims()
	details.Email = "details@example.com"
	payload := encodePayload(t, session.AuthResult{
		AccessToken: "opaque-token-not-a-jwt",
		UserDetails: &details,
	})

	claims, err := f.mgr.IngestOAuthResult(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "details@example.com", claims.Email)
}

func TestSessionManager_LoginWithGoogle_RoutesOnBusinesses(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	token := testToken(t, validClaims())
	payload := encodePayload(t, session.AuthResult{
		AccessToken:           token,
		InvoktaAuthentication: &session.ProviderAuthentication{RefreshToken: "refresh-g"},
	})
	f.nav.EXPECT().Navigate(session.RouteBusinessSetup)

	claims, err := f.mgr.LoginWithGoogle(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)

	refresh, err := f.store.Get(context.Background(), session.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-g", refresh)
}

func TestSessionManager_Refresh_Success(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, session.KeyRefreshToken, "refresh-1"))
	f.api.EXPECT().
		RefreshToken(gomock.Any(), "refresh-1").
		Return(&session.TokenPair{AccessToken: "new-token", RefreshToken: "refresh-2"}, nil)

	token, err := f.mgr.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-token", token)

	rotated, err := f.store.Get(ctx, session.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", rotated)
}

func TestSessionManager_Refresh_NoRefreshToken(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)

	f.nav.EXPECT().Navigate(session.RouteLogin)

	_, err := f.mgr.Refresh(context.Background())
	require.ErrorIs(t, err, session.ErrNoRefreshToken)
	assert.Equal(t, session.StateUnauthenticated, f.mgr.State())
}

func TestSessionManager_Refresh_RemoteFailureForcesLogout(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, session.KeyToken, "token"))
	require.NoError(t, f.store.Set(ctx, session.KeyRefreshToken, "refresh-1"))

	f.api.EXPECT().
		RefreshToken(gomock.Any(), "refresh-1").
		Return(nil, &session.RemoteError{StatusCode: 401, Message: "Refresh token expired"})
	f.nav.EXPECT().Navigate(session.RouteLogin)

	_, err := f.mgr.Refresh(ctx)
	require.Error(t, err)

	assert.Equal(t, session.StateUnauthenticated, f.mgr.State())
	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, "Refresh token expired", f.mgr.LastError())
}

func TestSessionManager_Logout_Idempotent(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Set(ctx, session.KeyToken, "token"))
	require.NoError(t, f.store.Set(ctx, session.KeyRefreshToken, "refresh"))
	require.NoError(t, f.store.Set(ctx, session.KeyAuthData, "{}"))

	f.nav.EXPECT().Navigate(session.RouteLogin).Times(2)

	require.NoError(t, f.mgr.Logout(ctx))
	assert.Equal(t, session.StateUnauthenticated, f.mgr.State())
	assert.Equal(t, 0, f.store.Len())

	require.NoError(t, f.mgr.Logout(ctx))
	assert.Equal(t, session.StateUnauthenticated, f.mgr.State())
}

func TestSessionManager_AuthResult_RetainedAcrossInitialize(t *testing.T) {
	t.Parallel()
	f := newSessionFixture(t)
	ctx := context.Background()

	token := testToken(t, validClaims(session.Business{ID: "b1", Name: "Acme"}))
	f.api.EXPECT().
		Authenticate(gomock.Any(), "user@example.com", "pw").
		Return(&session.AuthResult{
			AccessToken: token,
			Raw:         json.RawMessage(`{"accessToken":"` + token + `","extraField":42}`),
		}, nil)
	f.nav.EXPECT().Navigate(session.RouteDashboard)

	require.NoError(t, f.mgr.Login(ctx, "user@example.com", "pw"))

	// A fresh manager over the same store restores the retained response.
	f2 := newSessionFixture(t)
	f2.mgr = NewSessionManager(SessionManagerOptions{
		API:       f2.api,
		Store:     f.store,
		Stash:     f2.stash,
		Navigator: f2.nav,
		Decoder:   jwtclaims.NewDecoder(),
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, f2.mgr.Initialize(ctx))

	result := f2.mgr.AuthResult()
	require.NotNil(t, result)
	assert.Equal(t, token, result.AccessToken)
	assert.Contains(t, string(result.Raw), "extraField")
}
