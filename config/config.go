package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config files for
// details on available environment variables:
//   - auth.go: auth service and Google OAuth configuration
//   - store.go: credential store configuration
//   - business.go: business-setup lookup configuration
type AppConfig struct {
	// IsDev controls development mode behavior (relaxed validation,
	// verbose logging). Set DEV=true or NODE_ENV=development.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Auth service configuration
	Auth AuthConfig

	// Credential store configuration
	Store StoreConfig

	// Business-setup configuration
	Business BusinessConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment
// variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.Store.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
