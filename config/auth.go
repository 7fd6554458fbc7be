package config

import "time"

// AuthConfig groups auth-service and OAuth configuration.
type AuthConfig struct {
	// BaseURL is the base URL of the remote auth service.
	BaseURL string `env:"AUTH_BASE_URL" envDefault:"http://localhost:8081"`

	// RefreshHeader is the request header carrying the refresh token on
	// the refresh endpoint.
	RefreshHeader string `env:"AUTH_REFRESH_HEADER" envDefault:"X-Refresh-Token"`

	// RequestTimeout bounds each auth service call.
	RequestTimeout time.Duration `env:"AUTH_REQUEST_TIMEOUT" envDefault:"15s"`

	// InitTimeout bounds session initialization so a hung store or auth
	// service can never leave the client stuck in the authenticating state.
	InitTimeout time.Duration `env:"AUTH_INIT_TIMEOUT" envDefault:"10s"`

	// Google OAuth configuration (used for the direct Google login flow).
	Google GoogleOAuthConfig `envPrefix:"GOOGLE_OAUTH_"`
}

// GoogleOAuthConfig contains Google OAuth configuration. Empty ClientID
// disables the direct Google flow; the redirect-based ingestion path works
// regardless.
type GoogleOAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/oauth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	Issuer       string `env:"ISSUER"        envDefault:"https://accounts.google.com"`
}

// Enabled reports whether the direct Google flow is configured.
func (g GoogleOAuthConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.RequestTimeout <= 0 {
		a.RequestTimeout = 15 * time.Second
	}
	if a.InitTimeout <= 0 {
		a.InitTimeout = 10 * time.Second
	}
	if a.RefreshHeader == "" {
		a.RefreshHeader = "X-Refresh-Token"
	}
}
