package config

import (
	"fmt"
	"strings"
)

// StoreMode selects the credential store backend.
type StoreMode string

const (
	// StoreModeMemory keeps credentials for the process lifetime only.
	StoreModeMemory StoreMode = "memory"
	// StoreModeSQLite persists credentials in an on-disk database, the
	// default for a client installation.
	StoreModeSQLite StoreMode = "sqlite"
	// StoreModeRedis persists credentials in Redis.
	StoreModeRedis StoreMode = "redis"
	// StoreModePostgres persists credentials in Postgres, scoped per
	// installation.
	StoreModePostgres StoreMode = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for StoreMode.
func (m *StoreMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "memory", "sqlite", "redis", "postgres":
		*m = StoreMode(v)
		return nil
	default:
		return fmt.Errorf("invalid StoreMode: %q (valid options: memory, sqlite, redis, postgres)", v)
	}
}

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	Addr      string `env:"ADDR"       envDefault:"localhost:6379"`
	Password  string `env:"PASSWORD"   envDefault:""`
	DB        int    `env:"DB"         envDefault:"0"`
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"credentials:"`
}

// DBConfig contains Postgres connection configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"invokta"`
	Password string `env:"PASSWORD" envDefault:"invokta"`
	Name     string `env:"NAME"     envDefault:"invokta"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
}

// DSN returns the connection string for the configured database.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// StoreConfig groups credential store configuration.
type StoreConfig struct {
	// Mode selects the backend.
	Mode StoreMode `env:"STORE_MODE" envDefault:"sqlite"`

	// SQLitePath is the on-disk database location for sqlite mode.
	SQLitePath string `env:"STORE_SQLITE_PATH" envDefault:"onboarding.db"`

	// InstallationID scopes credentials in shared backends. Defaults to a
	// generated ID persisted alongside the store.
	InstallationID string `env:"STORE_INSTALLATION_ID"`

	Redis    RedisConfig `envPrefix:"STORE_REDIS_"`
	Postgres DBConfig    `envPrefix:"STORE_DB_"`
}

// Sanitize applies guardrails to store configuration values.
func (s *StoreConfig) Sanitize() {
	if s.Mode == "" {
		s.Mode = StoreModeSQLite
	}
	if s.SQLitePath == "" {
		s.SQLitePath = "onboarding.db"
	}
}
