package config

// AppConfig is the main application configuration struct. It composes
// domain-specific configuration from separate files:
//   - database.go: PostgreSQL and Redis configuration
//   - identity.go: identity source configuration
//   - provider.go: provider policy configuration
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library.
type AppConfig struct {
	// IsDev switches on development behavior: in-memory stores and the
	// static identity provider unless backends are explicitly configured.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// Identity source configuration
	Identity IdentityConfig `envPrefix:"IDENTITY_"`

	// Provider policy configuration
	Provider ProviderConfig `envPrefix:"PROVIDER_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// It should be called after loading.
func (c *AppConfig) Sanitize() {
	c.Identity.Sanitize()
	c.Provider.Sanitize()
}
