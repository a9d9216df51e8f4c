package usecase

// Package usecase contains the interaction and grant lifecycle engine. Use
// cases compose the service contracts from internal/ports and hold every
// policy decision; storage and transport stay behind those contracts.

import (
	"context"
	"log/slog"
	"strings"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

// AuthenticateUseCaseOptions groups dependencies for AuthenticateUseCase.
type AuthenticateUseCaseOptions struct {
	Identity ports.IdentityService // Required: external identity source
	Logger   *slog.Logger          // Optional: structured logger
}

// AuthenticateUseCase exchanges a raw access token for an Identity. Callers
// only ever see Unauthorized on failure; the upstream cause is logged, not
// leaked.
type AuthenticateUseCase struct {
	identity ports.IdentityService
	logger   *slog.Logger
}

// NewAuthenticateUseCase constructs a new AuthenticateUseCase.
func NewAuthenticateUseCase(opts AuthenticateUseCaseOptions) *AuthenticateUseCase {
	if opts.Identity == nil {
		panic("usecase: AuthenticateUseCase requires an IdentityService")
	}
	return &AuthenticateUseCase{
		identity: opts.Identity,
		logger:   opts.Logger,
	}
}

// Authenticate validates the token shape and delegates to the identity
// source. A structurally invalid token fails Unauthorized without an
// upstream call.
func (u *AuthenticateUseCase) Authenticate(ctx context.Context, accessToken string) (model.Identity, error) {
	if !validTokenShape(accessToken) {
		return model.Identity{}, errors.Unauthorized("invalid access token")
	}

	identity, err := u.identity.Authenticate(ctx, accessToken)
	if err != nil {
		if u.logger != nil {
			u.logger.WarnContext(ctx, "identity source rejected token", "error", err)
		}
		return model.Identity{}, errors.Wrap(err, errors.KindUnauthorized, "authentication failed")
	}
	return identity, nil
}

// validTokenShape checks the structural shape of a bearer token without
// consulting the identity source.
func validTokenShape(token string) bool {
	if token == "" {
		return false
	}
	return strings.IndexFunc(token, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}) < 0
}
