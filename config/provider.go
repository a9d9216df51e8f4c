package config

import "time"

// ProviderConfig contains the policy settings consumed by the use-case
// layer. Grant TTL and the remember-grant flag are the only settings that
// affect engine behavior; everything else configures adapters.
type ProviderConfig struct {
	// GrantTTLSeconds is how long a newly issued grant stays valid.
	GrantTTLSeconds int `env:"GRANT_TTL_SECONDS" envDefault:"86400"`

	// EnableRememberGrant gates the remember-grant feature globally.
	EnableRememberGrant bool `env:"ENABLE_REMEMBER_GRANT" envDefault:"false"`

	// IssuerURL is the public issuer identifier of this provider.
	IssuerURL string `env:"ISSUER_URL" envDefault:"http://localhost:3000"`
}

// defaultGrantTTLSeconds keeps a misconfigured TTL from issuing grants that
// never expire or expire immediately.
const defaultGrantTTLSeconds = 86400

// Sanitize applies guardrails to provider configuration.
func (c *ProviderConfig) Sanitize() {
	if c.GrantTTLSeconds <= 0 {
		c.GrantTTLSeconds = defaultGrantTTLSeconds
	}
}

// GrantTTL returns the grant lifetime as a duration.
func (c *ProviderConfig) GrantTTL() time.Duration {
	return time.Duration(c.GrantTTLSeconds) * time.Second
}
