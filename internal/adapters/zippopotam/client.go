package zippopotam

// Package zippopotam resolves postal codes against the public
// api.zippopotam.us directory. The response shape is third-party JSON with
// space-bearing keys ("place name", "state abbreviation"), extracted with
// jmespath expressions rather than a brittle struct mirror.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/invokta/onboarding/internal/domain/business"
	"github.com/invokta/onboarding/internal/ports"
	jmespath "github.com/jmespath-community/go-jmespath"
)

const (
	defaultBaseURL = "https://api.zippopotam.us"
	defaultTimeout = 10 * time.Second

	exprPlaceName = `places[0]."place name"`
	exprState     = `places[0].state || places[0]."state abbreviation"`
	exprCountry   = `country`
)

// Client queries the zippopotam postal directory.
type Client struct {
	rest *resty.Client
}

// ClientConfig holds configuration for the directory client.
type ClientConfig struct {
	BaseURL    string        // defaults to the public API
	Timeout    time.Duration // defaults to 10s
	HTTPClient *resty.Client // optional override
}

// NewClient creates a directory client.
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

// Lookup resolves a postal code within a country. Unknown codes return
// ports.ErrNotFound; the pincode field is optional, so callers treat that as
// a non-error.
func (c *Client) Lookup(ctx context.Context, countryCode, pincode string) (*business.Place, error) {
	if countryCode == "" || pincode == "" {
		return nil, errors.New("country code and pincode are required")
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"country": countryCode, "pincode": pincode}).
		Get("/{country}/{pincode}")
	if err != nil {
		return nil, fmt.Errorf("pincode lookup request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ports.ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("pincode lookup: status %d", resp.StatusCode())
	}

	var doc any
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, fmt.Errorf("decode pincode response: %w", err)
	}

	place := &business.Place{
		City:    searchString(exprPlaceName, doc),
		State:   searchString(exprState, doc),
		Country: searchString(exprCountry, doc),
	}
	if place.City == "" && place.Country == "" {
		return nil, ports.ErrNotFound
	}
	return place, nil
}

func searchString(expr string, doc any) string {
	result, err := jmespath.Search(expr, doc)
	if err != nil {
		return ""
	}
	s, _ := result.(string)
	return s
}
