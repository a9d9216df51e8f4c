package identity

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

var _ ports.IdentityService = (*ProfileAPIProvider)(nil)

// ProfileAPIConfig holds configuration for the profile API provider.
type ProfileAPIConfig struct {
	// BaseURL is the identity source endpoint, e.g. "https://backend.example.it".
	BaseURL string
	// ProfilePath is the path of the profile resource. Defaults to "/profile".
	ProfilePath string
	// Mapping overrides the default claim expressions.
	Mapping *ClaimMapping
	// HTTPClient is optional; a 10s-timeout client is used when nil.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// ProfileAPIProvider authenticates a bearer token by exchanging it for the
// user's profile at a proprietary HTTP endpoint. Upstream 400 and 401 become
// Unauthorized; 5xx and transport failures become Generic.
type ProfileAPIProvider struct {
	profileURL string
	mapping    ClaimMapping
	eval       JMESPathEvaluator
	httpClient *http.Client
	logger     *slog.Logger
}

// NewProfileAPIProvider creates a new profile API provider.
func NewProfileAPIProvider(cfg ProfileAPIConfig) (*ProfileAPIProvider, error) {
	if cfg.BaseURL == "" {
		return nil, errors.Format("identity base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindFormat, "invalid identity base URL")
	}
	path := cfg.ProfilePath
	if path == "" {
		path = "/profile"
	}

	mapping := DefaultClaimMapping()
	if cfg.Mapping != nil {
		mapping = *cfg.Mapping
	}
	eval := jmespathLibEvaluator{}
	if err := mapping.Validate(eval); err != nil {
		return nil, errors.Wrap(err, errors.KindFormat, "invalid claim mapping")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &ProfileAPIProvider{
		profileURL: base.JoinPath(path).String(),
		mapping:    mapping,
		eval:       eval,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}, nil
}

// Authenticate exchanges the bearer token for the user's profile.
func (p *ProfileAPIProvider) Authenticate(ctx context.Context, accessToken string) (model.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return model.Identity{}, errors.Wrap(err, errors.KindGeneric, "build profile request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return model.Identity{}, errors.Wrap(err, errors.KindGeneric, "call identity source")
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && p.logger != nil {
			p.logger.WarnContext(ctx, "close profile response body", "error", closeErr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decoding
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return model.Identity{}, errors.Unauthorized("identity source rejected the token")
	default:
		return model.Identity{}, errors.Genericf("identity source returned status %d", resp.StatusCode)
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return model.Identity{}, errors.Wrap(err, errors.KindFormat, "decode profile response")
	}
	return mapIdentity(p.eval, p.mapping, doc)
}
