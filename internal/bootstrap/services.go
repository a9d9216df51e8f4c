package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/civicid/oidc-provider/config"
	identityadapter "github.com/civicid/oidc-provider/internal/adapters/identity"
	"github.com/civicid/oidc-provider/internal/adapters/memory"
	redisadapter "github.com/civicid/oidc-provider/internal/adapters/redis"
	"github.com/civicid/oidc-provider/internal/bridge"
	"github.com/civicid/oidc-provider/internal/data"
	"github.com/civicid/oidc-provider/internal/ports"
	"github.com/civicid/oidc-provider/internal/usecase"
)

// StoreContainer holds the persistence services behind the use cases.
type StoreContainer struct {
	Clients      ports.ClientService
	Grants       ports.GrantService
	Interactions ports.InteractionService
	Sessions     ports.SessionService
}

// UseCaseContainer holds the application use cases and the bridge registry.
type UseCaseContainer struct {
	Authenticate       *usecase.AuthenticateUseCase
	ProcessInteraction *usecase.ProcessInteractionUseCase
	ConfirmConsent     *usecase.ConfirmConsentUseCase
	AbortInteraction   *usecase.AbortInteractionUseCase
	FindGrant          *usecase.FindGrantUseCase
	ListGrants         *usecase.ListGrantUseCase
	RemoveGrants       *usecase.RemoveGrantUseCase
	Bridge             *bridge.Registry
}

// StoreDeps groups dependencies for store initialization.
type StoreDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
}

// BuildStores wires persistence services. In dev mode everything is
// in-memory; otherwise clients and grants live in PostgreSQL while
// interactions and sessions live in Redis with their own expiry.
func BuildStores(deps StoreDeps) StoreContainer {
	if deps.Config != nil && deps.Config.IsDev {
		return StoreContainer{
			Clients:      memory.NewClientStore(),
			Grants:       memory.NewGrantStore(),
			Interactions: memory.NewInteractionStore(),
			Sessions:     memory.NewSessionStore(),
		}
	}

	return StoreContainer{
		Clients:      data.NewClientRepo(deps.DB),
		Grants:       data.NewGrantRepo(deps.DB),
		Interactions: redisadapter.NewInteractionStore(deps.RedisClient),
		Sessions:     redisadapter.NewSessionStore(deps.RedisClient),
	}
}

// BuildIdentityProvider selects the identity source adapter from
// configuration.
//
//nolint:ireturn // returning ports.IdentityService lets the mode pick the adapter.
func BuildIdentityProvider(ctx context.Context, cfg config.IdentityConfig) (ports.IdentityService, error) {
	switch cfg.Mode {
	case config.IdentityModeUserinfo:
		provider, err := identityadapter.NewUserinfoProvider(ctx, identityadapter.UserinfoConfig{
			IssuerURL: cfg.IssuerURL,
		})
		if err != nil {
			return nil, fmt.Errorf("build userinfo identity provider: %w", err)
		}
		return provider, nil

	case config.IdentityModeStatic:
		provider, err := identityadapter.NewStaticProvider(identityadapter.StaticConfig{
			ID:         cfg.StaticID,
			FiscalCode: cfg.StaticFiscalCode,
			GivenName:  cfg.StaticGivenName,
			FamilyName: cfg.StaticFamilyName,
		})
		if err != nil {
			return nil, fmt.Errorf("build static identity provider: %w", err)
		}
		return provider, nil

	default:
		mapping := claimMappingFromConfig(cfg)
		provider, err := identityadapter.NewProfileAPIProvider(identityadapter.ProfileAPIConfig{
			BaseURL:     cfg.BaseURL,
			ProfilePath: cfg.ProfilePath,
			Mapping:     mapping,
		})
		if err != nil {
			return nil, fmt.Errorf("build profile API identity provider: %w", err)
		}
		return provider, nil
	}
}

// claimMappingFromConfig overlays configured claim expressions onto the
// defaults. Returns nil when no override is set so the adapter keeps its
// defaults.
func claimMappingFromConfig(cfg config.IdentityConfig) *identityadapter.ClaimMapping {
	if cfg.ClaimID == "" && cfg.ClaimFiscalCode == "" && cfg.ClaimGivenName == "" && cfg.ClaimFamilyName == "" {
		return nil
	}

	mapping := identityadapter.DefaultClaimMapping()
	if cfg.ClaimID != "" {
		mapping.ID = cfg.ClaimID
	}
	if cfg.ClaimFiscalCode != "" {
		mapping.FiscalCode = cfg.ClaimFiscalCode
	}
	if cfg.ClaimGivenName != "" {
		mapping.GivenName = cfg.ClaimGivenName
	}
	if cfg.ClaimFamilyName != "" {
		mapping.FamilyName = cfg.ClaimFamilyName
	}
	return &mapping
}

// UseCaseDeps groups dependencies for use case initialization.
type UseCaseDeps struct {
	Config   *config.AppConfig
	Stores   StoreContainer
	Identity ports.IdentityService
	Logger   *slog.Logger
}

// BuildUseCases wires the application use cases and the bridge registry.
func BuildUseCases(deps UseCaseDeps) UseCaseContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := deps.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
		appCfg.Sanitize()
	}

	authenticate := usecase.NewAuthenticateUseCase(usecase.AuthenticateUseCaseOptions{
		Identity: deps.Identity,
		Logger:   logger,
	})

	process := usecase.NewProcessInteractionUseCase(usecase.ProcessInteractionUseCaseOptions{
		Interactions:        deps.Stores.Interactions,
		Clients:             deps.Stores.Clients,
		Grants:              deps.Stores.Grants,
		Authenticate:        authenticate,
		EnableRememberGrant: appCfg.Provider.EnableRememberGrant,
		Logger:              logger,
	})

	confirm := usecase.NewConfirmConsentUseCase(usecase.ConfirmConsentUseCaseOptions{
		Interactions: deps.Stores.Interactions,
		Grants:       deps.Stores.Grants,
		Config: usecase.ConsentConfig{
			GrantTTL:            appCfg.Provider.GrantTTL(),
			EnableRememberGrant: appCfg.Provider.EnableRememberGrant,
		},
		Logger: logger,
	})

	abort := usecase.NewAbortInteractionUseCase(usecase.AbortInteractionUseCaseOptions{
		Interactions: deps.Stores.Interactions,
	})

	findGrant := usecase.NewFindGrantUseCase(usecase.FindGrantUseCaseOptions{
		Grants: deps.Stores.Grants,
	})

	listGrants := usecase.NewListGrantUseCase(usecase.ListGrantUseCaseOptions{
		Grants: deps.Stores.Grants,
	})

	removeGrants := usecase.NewRemoveGrantUseCase(usecase.RemoveGrantUseCaseOptions{
		Grants: deps.Stores.Grants,
	})

	registry := bridge.NewRegistry(bridge.RegistryOptions{
		Clients:      deps.Stores.Clients,
		Grants:       deps.Stores.Grants,
		Interactions: deps.Stores.Interactions,
		Sessions:     deps.Stores.Sessions,
	})

	return UseCaseContainer{
		Authenticate:       authenticate,
		ProcessInteraction: process,
		ConfirmConsent:     confirm,
		AbortInteraction:   abort,
		FindGrant:          findGrant,
		ListGrants:         listGrants,
		RemoveGrants:       removeGrants,
		Bridge:             registry,
	}
}
