package authapi

// Package authapi is the HTTP client for the remote Invokta auth and
// business endpoints. All trust decisions and token validation happen on
// that service; this client only shapes requests and maps failures.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/invokta/onboarding/internal/domain/business"
	"github.com/invokta/onboarding/internal/domain/session"
)

const (
	authenticatePath = "/api/auth/authenticate"
	registerPath     = "/api/auth/register"
	refreshPath      = "/api/auth/refresh-token"
	addBusinessPath  = "/api/business/add"

	defaultRefreshHeader = "X-Refresh-Token"
	defaultTimeout       = 15 * time.Second
)

// ClientConfig holds configuration for the auth API client.
type ClientConfig struct {
	BaseURL string

	// RefreshHeader is the request header carrying the refresh token, so
	// the refresh endpoint is callable without a valid access token.
	// Defaults to X-Refresh-Token.
	RefreshHeader string

	// Timeout bounds each request. Defaults to 15s.
	Timeout time.Duration

	// HTTPClient overrides the underlying resty client. Optional.
	HTTPClient *resty.Client
}

// Client talks to the remote auth service.
type Client struct {
	rest          *resty.Client
	refreshHeader string
}

// NewClient creates an auth API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" && cfg.HTTPClient == nil {
		return nil, errors.New("base URL is required")
	}

	rest := cfg.HTTPClient
	if rest == nil {
		rest = resty.New()
	}
	if cfg.BaseURL != "" {
		rest.SetBaseURL(cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rest.SetTimeout(timeout)
	rest.SetHeader("Content-Type", "application/json")

	refreshHeader := cfg.RefreshHeader
	if refreshHeader == "" {
		refreshHeader = defaultRefreshHeader
	}

	return &Client{rest: rest, refreshHeader: refreshHeader}, nil
}

// Authenticate exchanges email/password for an auth result.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*session.AuthResult, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		Post(authenticatePath)
	if err != nil {
		return nil, fmt.Errorf("authenticate request: %w", err)
	}

	return decodeAuthResult(resp)
}

// Register creates an account and returns its auth result.
func (c *Client) Register(ctx context.Context, req session.RegistrationRequest) (*session.AuthResult, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(req).
		Post(registerPath)
	if err != nil {
		return nil, fmt.Errorf("register request: %w", err)
	}

	return decodeAuthResult(resp)
}

// RefreshToken exchanges a refresh token for a new token pair. The refresh
// token travels in a header, not the body.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*session.TokenPair, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader(c.refreshHeader, refreshToken).
		Post(refreshPath)
	if err != nil {
		return nil, fmt.Errorf("refresh request: %w", err)
	}
	if resp.IsError() {
		return nil, remoteError(resp)
	}

	var pair session.TokenPair
	if err := json.Unmarshal(resp.Body(), &pair); err != nil {
		return nil, fmt.Errorf("decode refresh response: %w", err)
	}
	if pair.AccessToken == "" {
		return nil, &session.RemoteError{StatusCode: resp.StatusCode(), Message: "refresh response missing access token"}
	}
	return &pair, nil
}

// AddBusiness submits business details and returns the created record.
func (c *Client) AddBusiness(ctx context.Context, details business.Details) (*business.Record, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(details).
		Post(addBusinessPath)
	if err != nil {
		return nil, fmt.Errorf("add business request: %w", err)
	}
	if resp.IsError() {
		return nil, remoteError(resp)
	}

	var record business.Record
	if err := json.Unmarshal(resp.Body(), &record); err != nil {
		return nil, fmt.Errorf("decode business response: %w", err)
	}
	if record.BusinessID == "" {
		return nil, &session.RemoteError{StatusCode: resp.StatusCode(), Message: "no business ID returned"}
	}
	return &record, nil
}

// decodeAuthResult parses a 2xx auth response, retaining the verbatim body
// on the result.
func decodeAuthResult(resp *resty.Response) (*session.AuthResult, error) {
	if resp.IsError() {
		return nil, remoteError(resp)
	}

	body := resp.Body()
	var result session.AuthResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	result.Raw = append(json.RawMessage(nil), body...)
	return &result, nil
}

// remoteError maps a non-2xx response to a RemoteError, surfacing the
// server-provided message when the body carries one.
func remoteError(resp *resty.Response) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	message := ""
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		message = body.Message
		if message == "" {
			message = body.Error
		}
	}
	return &session.RemoteError{StatusCode: resp.StatusCode(), Message: message}
}
