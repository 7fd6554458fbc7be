package session

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPayload is returned when an OAuth result payload cannot
	// be parsed or is missing its access token.
	ErrMalformedPayload = errors.New("malformed auth payload")

	// ErrNoRefreshToken is returned when a refresh is attempted with no
	// refresh token persisted.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrTokenDecode is returned when access-token claims cannot be
	// decoded. Undecodable tokens are never trusted.
	ErrTokenDecode = errors.New("token claims undecodable")
)

// RemoteError is a non-2xx or transport-level failure from the remote auth
// service, carrying the server-provided message when one was present.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("auth service: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("auth service: status %d", e.StatusCode)
}

// ServerMessage extracts the server-provided message from err, falling back
// to the given default. UI layers surface the result in the error slot.
func ServerMessage(err error, fallback string) string {
	var re *RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}
