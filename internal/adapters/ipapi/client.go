package ipapi

// Package ipapi detects the caller's country from its network location via
// the public ipapi.co service. Used only to prefill the country field of the
// business-setup form; failures degrade to a configured default.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://ipapi.co"
	defaultTimeout = 10 * time.Second
)

// Client queries the geolocation service.
type Client struct {
	rest *resty.Client
}

// ClientConfig holds configuration for the geolocation client.
type ClientConfig struct {
	BaseURL    string        // defaults to the public API
	Timeout    time.Duration // defaults to 10s
	HTTPClient *resty.Client // optional override
}

// NewClient creates a geolocation client.
func NewClient(cfg ClientConfig) *Client {
	rest := cfg.HTTPClient
	if rest == nil {
		rest = resty.New()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	rest.SetBaseURL(baseURL)
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rest.SetTimeout(timeout)

	return &Client{rest: rest}
}

// Locate returns the detected country name and ISO code.
func (c *Client) Locate(ctx context.Context) (string, string, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		Get("/json/")
	if err != nil {
		return "", "", fmt.Errorf("geolocation request: %w", err)
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("geolocation: status %d", resp.StatusCode())
	}

	var body struct {
		CountryName string `json:"country_name"`
		CountryCode string `json:"country_code"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", "", fmt.Errorf("decode geolocation response: %w", err)
	}
	return body.CountryName, body.CountryCode, nil
}
