package identity

import (
	"context"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

var _ ports.IdentityService = (*StaticProvider)(nil)

// StaticConfig controls the static dev provider.
type StaticConfig struct {
	ID         string
	FiscalCode string
	GivenName  string
	FamilyName string
}

// StaticProvider implements ports.IdentityService for local development.
// It accepts any well-formed token and returns the configured identity.
type StaticProvider struct {
	identity model.Identity
}

// NewStaticProvider constructs a static provider from config.
func NewStaticProvider(cfg StaticConfig) (*StaticProvider, error) {
	id, err := model.ParseIdentityID(cfg.ID)
	if err != nil {
		return nil, err
	}
	if cfg.FiscalCode == "" {
		return nil, errors.Format("dev identity: fiscal code is required")
	}
	return &StaticProvider{
		identity: model.Identity{
			ID:         id,
			FiscalCode: cfg.FiscalCode,
			GivenName:  cfg.GivenName,
			FamilyName: cfg.FamilyName,
		},
	}, nil
}

// Authenticate returns the configured identity for any non-empty token.
func (p *StaticProvider) Authenticate(_ context.Context, accessToken string) (model.Identity, error) {
	if accessToken == "" {
		return model.Identity{}, errors.Unauthorized("empty access token")
	}
	return p.identity, nil
}
