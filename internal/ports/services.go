package ports

// Package ports defines the service contracts the use-case layer consumes.
// Implementations live in internal/adapters and internal/data; orchestration
// in internal/usecase.
//
// Lookup convention: every find-by-id returns (nil, nil) when the entity is
// absent. Turning "absent" into a NotFound error is a use-case decision, not
// a storage one. An absent grant on lookup is a normal branch.

import (
	"context"

	"github.com/civicid/oidc-provider/internal/domain/model"
)

// ClientSelector filters client listings. Nil fields match everything.
type ClientSelector struct {
	OrganizationID *model.OrganizationID
	ServiceID      *model.ServiceID
}

// ClientService stores registered relying parties.
type ClientService interface {
	Find(ctx context.Context, id model.ClientID) (*model.Client, error)
	List(ctx context.Context, sel ClientSelector) ([]model.Client, error)
	Upsert(ctx context.Context, client model.Client) (model.Client, error)
	Remove(ctx context.Context, id model.ClientID) error
}

// GrantSelector filters grant queries. A nil ClientID matches grants for any
// client of the identity.
type GrantSelector struct {
	ClientID   *model.ClientID
	IdentityID model.IdentityID
	Remember   bool
}

// GrantService stores consent records.
type GrantService interface {
	Find(ctx context.Context, identityID model.IdentityID, id model.GrantID) (*model.Grant, error)
	FindBy(ctx context.Context, sel GrantSelector) ([]model.Grant, error)
	Upsert(ctx context.Context, grant model.Grant) (model.Grant, error)
	Remove(ctx context.Context, identityID model.IdentityID, id model.GrantID) error
}

// InteractionService stores pending authorization interactions.
type InteractionService interface {
	Find(ctx context.Context, id model.InteractionID) (*model.Interaction, error)
	Upsert(ctx context.Context, interaction model.Interaction) (model.Interaction, error)
	Remove(ctx context.Context, id model.InteractionID) error
}

// SessionService stores browser login sessions.
type SessionService interface {
	Find(ctx context.Context, id model.SessionID) (*model.Session, error)
	FindByUID(ctx context.Context, uid string) (*model.Session, error)
	Upsert(ctx context.Context, session model.Session) (model.Session, error)
	Remove(ctx context.Context, id model.SessionID) error
}

// IdentityService authenticates an opaque access token against the external
// identity source. It fails Unauthorized on an invalid or expired token and
// Generic on upstream failure.
type IdentityService interface {
	Authenticate(ctx context.Context, accessToken string) (model.Identity, error)
}
