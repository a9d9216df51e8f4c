package testutil

import (
	"time"

	"github.com/civicid/oidc-provider/internal/domain/model"
)

// InteractionBuilder provides a fluent interface for building Interaction
// values for testing.
type InteractionBuilder struct {
	interaction model.Interaction
}

// NewInteraction creates an InteractionBuilder with sensible defaults.
func NewInteraction() *InteractionBuilder {
	now := time.Now()
	return &InteractionBuilder{
		interaction: model.Interaction{
			ID:       "interaction-1",
			IssuedAt: now,
			ExpireAt: now.Add(10 * time.Minute),
			Params: model.InteractionParams{
				ClientID:     "org-1:svc-1",
				RedirectURI:  "https://rp.example.com/callback",
				ResponseType: "code",
				Scope:        "openid profile",
				State:        "state-1",
			},
		},
	}
}

// WithID sets the interaction id.
func (b *InteractionBuilder) WithID(id model.InteractionID) *InteractionBuilder {
	b.interaction.ID = id
	return b
}

// WithClientID sets the serialized client id parameter.
func (b *InteractionBuilder) WithClientID(clientID string) *InteractionBuilder {
	b.interaction.Params.ClientID = clientID
	return b
}

// WithScope sets the requested scope.
func (b *InteractionBuilder) WithScope(scope string) *InteractionBuilder {
	b.interaction.Params.Scope = scope
	return b
}

// Authenticated marks the interaction as past login.
func (b *InteractionBuilder) Authenticated(identityID model.IdentityID) *InteractionBuilder {
	b.interaction.Result = &model.InteractionResult{IdentityID: identityID}
	return b
}

// Consented marks the interaction as past consent, linked to a grant.
func (b *InteractionBuilder) Consented(identityID model.IdentityID, grantID model.GrantID) *InteractionBuilder {
	b.interaction.Result = &model.InteractionResult{IdentityID: identityID, GrantID: &grantID}
	return b
}

// Build returns the interaction value.
func (b *InteractionBuilder) Build() model.Interaction {
	return b.interaction
}

// GrantBuilder provides a fluent interface for building Grant values for
// testing.
type GrantBuilder struct {
	grant model.Grant
}

// NewGrant creates a GrantBuilder with sensible defaults: a remembered,
// unexpired grant for "openid profile".
func NewGrant() *GrantBuilder {
	now := time.Now()
	return &GrantBuilder{
		grant: model.Grant{
			ID:       "grant-1",
			IssuedAt: now,
			ExpireAt: now.Add(time.Hour),
			Scope:    "openid profile",
			Remember: true,
			Subjects: model.GrantSubjects{
				ClientID:   model.ClientID{OrganizationID: "org-1", ServiceID: "svc-1"},
				IdentityID: "identity-1",
			},
		},
	}
}

// WithID sets the grant id.
func (b *GrantBuilder) WithID(id model.GrantID) *GrantBuilder {
	b.grant.ID = id
	return b
}

// WithScope sets the granted scope.
func (b *GrantBuilder) WithScope(scope string) *GrantBuilder {
	b.grant.Scope = scope
	return b
}

// WithRemember sets the remember flag.
func (b *GrantBuilder) WithRemember(remember bool) *GrantBuilder {
	b.grant.Remember = remember
	return b
}

// WithSubjects sets the grant subjects.
func (b *GrantBuilder) WithSubjects(clientID model.ClientID, identityID model.IdentityID) *GrantBuilder {
	b.grant.Subjects = model.GrantSubjects{ClientID: clientID, IdentityID: identityID}
	return b
}

// ExpiredAt pins issuance and expiry so the grant is expired at the given
// instant.
func (b *GrantBuilder) ExpiredAt(now time.Time) *GrantBuilder {
	b.grant.IssuedAt = now.Add(-2 * time.Hour)
	b.grant.ExpireAt = now.Add(-time.Minute)
	return b
}

// Build returns the grant value.
func (b *GrantBuilder) Build() model.Grant {
	return b.grant
}

// ClientBuilder provides a fluent interface for building Client values for
// testing.
type ClientBuilder struct {
	client model.Client
}

// NewClient creates a ClientBuilder with sensible defaults.
func NewClient() *ClientBuilder {
	return &ClientBuilder{
		client: model.Client{
			ID:            model.ClientID{OrganizationID: "org-1", ServiceID: "svc-1"},
			Name:          "Example RP",
			GrantTypes:    []string{"implicit"},
			RedirectURIs:  []string{"https://rp.example.com/callback"},
			ResponseTypes: []string{"id_token"},
			Scope:         "openid profile",
			IssuedAt:      time.Now(),
		},
	}
}

// WithID sets the client id.
func (b *ClientBuilder) WithID(id model.ClientID) *ClientBuilder {
	b.client.ID = id
	return b
}

// WithScope sets the default scope.
func (b *ClientBuilder) WithScope(scope string) *ClientBuilder {
	b.client.Scope = scope
	return b
}

// Build returns the client value.
func (b *ClientBuilder) Build() model.Client {
	return b.client
}
