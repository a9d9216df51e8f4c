package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("DEV", "true")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "identity")
	t.Setenv("REDIS_URI", "redis.internal:6379")
	t.Setenv("IDENTITY_MODE", "userinfo")
	t.Setenv("IDENTITY_ISSUER_URL", "https://login.example.org")
	t.Setenv("PROVIDER_GRANT_TTL_SECONDS", "3600")
	t.Setenv("PROVIDER_ENABLE_REMEMBER_GRANT", "true")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	if !cfg.IsDev {
		t.Error("expected IsDev to be true")
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("expected db host db.internal, got %q", cfg.Postgres.Host)
	}
	if cfg.Postgres.Port != 5433 {
		t.Errorf("expected db port 5433, got %d", cfg.Postgres.Port)
	}
	if cfg.Postgres.Name != "identity" {
		t.Errorf("expected db name identity, got %q", cfg.Postgres.Name)
	}
	if cfg.Redis.URI != "redis.internal:6379" {
		t.Errorf("expected redis uri redis.internal:6379, got %q", cfg.Redis.URI)
	}
	if cfg.Identity.Mode != IdentityModeUserinfo {
		t.Errorf("expected identity mode userinfo, got %q", cfg.Identity.Mode)
	}
	if cfg.Identity.IssuerURL != "https://login.example.org" {
		t.Errorf("expected issuer url, got %q", cfg.Identity.IssuerURL)
	}
	if cfg.Provider.GrantTTLSeconds != 3600 {
		t.Errorf("expected grant ttl 3600, got %d", cfg.Provider.GrantTTLSeconds)
	}
	if !cfg.Provider.EnableRememberGrant {
		t.Error("expected remember grant to be enabled")
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	if cfg.IsDev {
		t.Error("expected IsDev to default to false")
	}
	if cfg.Postgres.Host != "localhost" {
		t.Errorf("expected default db host localhost, got %q", cfg.Postgres.Host)
	}
	if cfg.Postgres.SSLMode != "disable" {
		t.Errorf("expected default ssl mode disable, got %q", cfg.Postgres.SSLMode)
	}
	if !cfg.Postgres.RunMigrationsOnStart {
		t.Error("expected migrations on start to default to true")
	}
	if cfg.Identity.Mode != IdentityModeProfileAPI {
		t.Errorf("expected default identity mode profile-api, got %q", cfg.Identity.Mode)
	}
	if cfg.Provider.GrantTTLSeconds != 86400 {
		t.Errorf("expected default grant ttl 86400, got %d", cfg.Provider.GrantTTLSeconds)
	}
	if cfg.Provider.EnableRememberGrant {
		t.Error("expected remember grant to default to false")
	}
}

func TestIdentityConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name            string
		cfg             IdentityConfig
		expectedMode    IdentityMode
		expectedTimeout int
	}{
		{
			name:            "invalid mode falls back to profile-api",
			cfg:             IdentityConfig{Mode: "ldap", TimeoutSeconds: 5},
			expectedMode:    IdentityModeProfileAPI,
			expectedTimeout: 5,
		},
		{
			name:            "empty mode falls back to profile-api",
			cfg:             IdentityConfig{TimeoutSeconds: 5},
			expectedMode:    IdentityModeProfileAPI,
			expectedTimeout: 5,
		},
		{
			name:            "static mode preserved",
			cfg:             IdentityConfig{Mode: IdentityModeStatic, TimeoutSeconds: 5},
			expectedMode:    IdentityModeStatic,
			expectedTimeout: 5,
		},
		{
			name:            "zero timeout falls back to default",
			cfg:             IdentityConfig{Mode: IdentityModeUserinfo, TimeoutSeconds: 0},
			expectedMode:    IdentityModeUserinfo,
			expectedTimeout: 10,
		},
		{
			name:            "negative timeout falls back to default",
			cfg:             IdentityConfig{Mode: IdentityModeUserinfo, TimeoutSeconds: -3},
			expectedMode:    IdentityModeUserinfo,
			expectedTimeout: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.Sanitize()

			if cfg.Mode != tt.expectedMode {
				t.Errorf("expected mode %q, got %q", tt.expectedMode, cfg.Mode)
			}
			if cfg.TimeoutSeconds != tt.expectedTimeout {
				t.Errorf("expected timeout %d, got %d", tt.expectedTimeout, cfg.TimeoutSeconds)
			}
		})
	}
}

func TestProviderConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name        string
		ttl         int
		expectedTTL int
	}{
		{name: "positive ttl preserved", ttl: 7200, expectedTTL: 7200},
		{name: "zero ttl falls back to default", ttl: 0, expectedTTL: 86400},
		{name: "negative ttl falls back to default", ttl: -60, expectedTTL: 86400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ProviderConfig{GrantTTLSeconds: tt.ttl}
			cfg.Sanitize()

			if cfg.GrantTTLSeconds != tt.expectedTTL {
				t.Errorf("expected ttl %d, got %d", tt.expectedTTL, cfg.GrantTTLSeconds)
			}
		})
	}
}

func TestProviderConfig_GrantTTL(t *testing.T) {
	cfg := ProviderConfig{GrantTTLSeconds: 90}
	if got := cfg.GrantTTL(); got != 90*time.Second {
		t.Errorf("expected 90s, got %v", got)
	}
}
