package jwtclaims

// Package jwtclaims decodes access-token claims. Tokens are opaque signed
// credentials validated server-side; the client only reads the claim payload
// (expiry, business affiliations) and must never treat an undecodable token
// as anonymous-but-valid.

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/invokta/onboarding/internal/domain/session"
)

// Decoder extracts claims from JWT access tokens without verifying the
// signature. Signature verification belongs to the auth service.
type Decoder struct{}

// NewDecoder constructs a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses the token payload into session claims. Any parse failure is
// reported as session.ErrTokenDecode.
func (d *Decoder) Decode(token string) (session.Claims, error) {
	if token == "" {
		return session.Claims{}, session.ErrTokenDecode
	}

	parser := jwt.NewParser()
	var raw jwt.MapClaims
	if _, _, err := parser.ParseUnverified(token, &raw); err != nil {
		return session.Claims{}, fmt.Errorf("%w: %w", session.ErrTokenDecode, err)
	}

	claims, err := mapToClaims(raw)
	if err != nil {
		return session.Claims{}, fmt.Errorf("%w: %w", session.ErrTokenDecode, err)
	}
	return claims, nil
}

// mapToClaims converts the duck-typed claim map into the typed shape via a
// JSON round trip, so numeric exp values in either float or string form are
// handled uniformly.
func mapToClaims(raw jwt.MapClaims) (session.Claims, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return session.Claims{}, err
	}

	var claims session.Claims
	if err := json.Unmarshal(data, &claims); err != nil {
		return session.Claims{}, err
	}
	if claims.ExpiresAt == 0 {
		return session.Claims{}, errors.New("claims missing expiry")
	}
	return claims, nil
}
