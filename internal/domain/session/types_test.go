package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaims_Expiry(t *testing.T) {
	t.Parallel()
	exp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	claims := Claims{ExpiresAt: exp.Unix()}

	assert.True(t, claims.Expiry().Equal(exp))
	assert.False(t, claims.Expired(exp.Add(-time.Minute)))
	assert.True(t, claims.Expired(exp.Add(time.Minute)))
}

func TestClaims_HasBusinessDetails(t *testing.T) {
	t.Parallel()
	assert.False(t, Claims{}.HasBusinessDetails())
	assert.False(t, Claims{Businesses: []Business{}}.HasBusinessDetails())
	assert.True(t, Claims{Businesses: []Business{{ID: "b1"}}}.HasBusinessDetails())
}

func TestAuthResult_Encoded(t *testing.T) {
	t.Parallel()

	// A captured verbatim body wins over re-marshaling.
	withRaw := &AuthResult{
		AccessToken: "token",
		Raw:         []byte(`{"accessToken":"token","vendorField":1}`),
	}
	encoded, err := withRaw.Encoded()
	require.NoError(t, err)
	assert.Contains(t, encoded, "vendorField")

	withoutRaw := &AuthResult{AccessToken: "token"}
	encoded, err = withoutRaw.Encoded()
	require.NoError(t, err)
	assert.JSONEq(t, `{"accessToken":"token"}`, encoded)
}

func TestRemoteError_Error(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "auth service: nope (status 401)",
		(&RemoteError{StatusCode: 401, Message: "nope"}).Error())
	assert.Equal(t, "auth service: status 500",
		(&RemoteError{StatusCode: 500}).Error())
}

func TestServerMessage(t *testing.T) {
	t.Parallel()

	remote := &RemoteError{StatusCode: 401, Message: "Invalid credentials"}
	assert.Equal(t, "Invalid credentials", ServerMessage(remote, "fallback"))

	wrapped := errors.Join(errors.New("outer"), remote)
	assert.Equal(t, "Invalid credentials", ServerMessage(wrapped, "fallback"))

	assert.Equal(t, "fallback", ServerMessage(errors.New("plain"), "fallback"))
	assert.Equal(t, "fallback", ServerMessage(&RemoteError{StatusCode: 500}, "fallback"))
}
