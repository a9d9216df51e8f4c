package config

// IdentityMode selects the identity source adapter.
type IdentityMode string

const (
	// IdentityModeProfileAPI exchanges the bearer token at a proprietary
	// profile endpoint.
	IdentityModeProfileAPI IdentityMode = "profile-api"
	// IdentityModeUserinfo exchanges the bearer token at a standard OIDC
	// userinfo endpoint.
	IdentityModeUserinfo IdentityMode = "userinfo"
	// IdentityModeStatic returns a fixed identity; development only.
	IdentityModeStatic IdentityMode = "static"
)

// IdentityConfig contains identity source configuration.
type IdentityConfig struct {
	Mode IdentityMode `env:"MODE" envDefault:"profile-api"`

	// BaseURL is the profile API endpoint (profile-api mode).
	BaseURL string `env:"BASE_URL"`
	// ProfilePath is the profile resource path (profile-api mode).
	ProfilePath string `env:"PROFILE_PATH" envDefault:"/profile"`

	// IssuerURL is the upstream OIDC issuer (userinfo mode).
	IssuerURL string `env:"ISSUER_URL"`

	// TimeoutSeconds bounds each upstream call.
	TimeoutSeconds int `env:"TIMEOUT_SECONDS" envDefault:"10"`

	// Claim expression overrides (profile-api mode). Empty values keep the
	// defaults.
	ClaimID         string `env:"CLAIM_ID"`
	ClaimFiscalCode string `env:"CLAIM_FISCAL_CODE"`
	ClaimGivenName  string `env:"CLAIM_GIVEN_NAME"`
	ClaimFamilyName string `env:"CLAIM_FAMILY_NAME"`

	// Static identity (static mode).
	StaticID         string `env:"STATIC_ID"          envDefault:"dev-identity"`
	StaticFiscalCode string `env:"STATIC_FISCAL_CODE" envDefault:"AAABBB00A00A000A"`
	StaticGivenName  string `env:"STATIC_GIVEN_NAME"  envDefault:"Ada"`
	StaticFamilyName string `env:"STATIC_FAMILY_NAME" envDefault:"Lovelace"`
}

// Sanitize applies guardrails to identity configuration.
func (c *IdentityConfig) Sanitize() {
	switch c.Mode {
	case IdentityModeProfileAPI, IdentityModeUserinfo, IdentityModeStatic:
	default:
		c.Mode = IdentityModeProfileAPI
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}
