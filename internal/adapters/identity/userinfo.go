package identity

import (
	"context"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

var _ ports.IdentityService = (*UserinfoProvider)(nil)

// UserinfoConfig holds configuration for the OIDC userinfo provider.
type UserinfoConfig struct {
	// IssuerURL is the upstream issuer; its discovery document locates the
	// userinfo endpoint. A trailing /.well-known/openid-configuration is
	// tolerated.
	IssuerURL  string
	HTTPClient *http.Client // Optional, defaults to a 10s-timeout client
}

// UserinfoProvider authenticates a bearer token against a standard OIDC
// userinfo endpoint, for deployments whose identity source is itself an
// OIDC provider.
type UserinfoProvider struct {
	provider   *gooidc.Provider
	httpClient *http.Client
}

// userinfoClaims is the subset of userinfo claims this provider consumes.
type userinfoClaims struct {
	Subject    string `json:"sub"`
	FiscalCode string `json:"fiscal_number"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// NewUserinfoProvider creates a new userinfo provider. Discovery is fetched
// once at construction.
func NewUserinfoProvider(ctx context.Context, cfg UserinfoConfig) (*UserinfoProvider, error) {
	if cfg.IssuerURL == "" {
		return nil, errors.Format("issuer URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	issuer := strings.TrimSuffix(cfg.IssuerURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")

	ctx = gooidc.ClientContext(ctx, httpClient)
	provider, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindGeneric, "oidc discovery")
	}
	return &UserinfoProvider{provider: provider, httpClient: httpClient}, nil
}

// Authenticate exchanges the bearer token for userinfo claims.
func (p *UserinfoProvider) Authenticate(ctx context.Context, accessToken string) (model.Identity, error) {
	ctx = gooidc.ClientContext(ctx, p.httpClient)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})

	info, err := p.provider.UserInfo(ctx, ts)
	if err != nil {
		// go-oidc folds the HTTP status into the error; any failure here
		// means the token did not resolve to a user.
		return model.Identity{}, errors.Wrap(err, errors.KindUnauthorized, "userinfo request failed")
	}

	var claims userinfoClaims
	if err := info.Claims(&claims); err != nil {
		return model.Identity{}, errors.Wrap(err, errors.KindFormat, "decode userinfo claims")
	}

	identityID, err := model.ParseIdentityID(claims.Subject)
	if err != nil {
		return model.Identity{}, err
	}
	fiscalCode := claims.FiscalCode
	if fiscalCode == "" {
		fiscalCode = claims.Subject
	}
	return model.Identity{
		ID:         identityID,
		FiscalCode: fiscalCode,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
	}, nil
}
