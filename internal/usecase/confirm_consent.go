package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

// ConsentConfig carries the two settings that affect consent behavior.
type ConsentConfig struct {
	// GrantTTL is how long a newly issued grant stays valid.
	GrantTTL time.Duration
	// EnableRememberGrant gates the remember-grant feature globally. The
	// per-request choice only takes effect when this is on.
	EnableRememberGrant bool
}

// ConfirmConsentUseCaseOptions groups dependencies for ConfirmConsentUseCase.
type ConfirmConsentUseCaseOptions struct {
	Interactions ports.InteractionService
	Grants       ports.GrantService
	Config       ConsentConfig
	Logger       *slog.Logger
	// Now overrides the clock, useful for tests. Defaults to time.Now.
	Now func() time.Time
	// NewGrantID overrides grant id generation, useful for tests.
	NewGrantID func() model.GrantID
}

// ConfirmConsentUseCase records the user's consent decision: it reuses a
// matching grant when one exists, otherwise mints a new one, then links the
// grant to the interaction.
type ConfirmConsentUseCase struct {
	interactions ports.InteractionService
	grants       ports.GrantService
	cfg          ConsentConfig
	logger       *slog.Logger
	now          func() time.Time
	newGrantID   func() model.GrantID
}

// NewConfirmConsentUseCase constructs a new ConfirmConsentUseCase.
func NewConfirmConsentUseCase(opts ConfirmConsentUseCaseOptions) *ConfirmConsentUseCase {
	if opts.Interactions == nil || opts.Grants == nil {
		panic("usecase: ConfirmConsentUseCase requires interactions and grants")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewGrantID
	if newID == nil {
		newID = func() model.GrantID { return model.GrantID(uuid.NewString()) }
	}
	return &ConfirmConsentUseCase{
		interactions: opts.Interactions,
		grants:       opts.Grants,
		cfg:          opts.Config,
		logger:       opts.Logger,
		now:          now,
		newGrantID:   newID,
	}
}

// Confirm applies the consent decision for the interaction and returns the
// grant now linked to it.
//
// The interaction and grant writes are independent; a failure between them
// can leave an interaction referencing a grant that was never stored. That
// asymmetry is accepted, see DESIGN.md.
func (u *ConfirmConsentUseCase) Confirm(
	ctx context.Context,
	id model.InteractionID,
	rememberGrant bool,
) (model.Grant, error) {
	interaction, err := u.interactions.Find(ctx, id)
	if err != nil {
		return model.Grant{}, err
	}
	if interaction == nil {
		return model.Grant{}, errors.NotFound("Interaction not found")
	}

	now := u.now()
	grant, err := findReusableGrant(ctx, u.grants, *interaction, now)
	if err != nil {
		return model.Grant{}, err
	}
	if grant == nil {
		grant, err = u.mintGrant(*interaction, rememberGrant, now)
		if err != nil {
			return model.Grant{}, err
		}
	}

	interaction.Result = &model.InteractionResult{
		IdentityID: grant.Subjects.IdentityID,
		GrantID:    &grant.ID,
	}
	if _, err := u.interactions.Upsert(ctx, *interaction); err != nil {
		return model.Grant{}, fmt.Errorf("persist interaction result: %w", err)
	}
	stored, err := u.grants.Upsert(ctx, *grant)
	if err != nil {
		return model.Grant{}, fmt.Errorf("persist grant: %w", err)
	}
	return stored, nil
}

// mintGrant synthesizes a fresh grant for an authenticated interaction.
func (u *ConfirmConsentUseCase) mintGrant(
	interaction model.Interaction,
	rememberGrant bool,
	now time.Time,
) (*model.Grant, error) {
	if !interaction.Authenticated() {
		return nil, errors.Generic("Unable to create a valid grant")
	}
	clientID, err := model.ParseClientID(interaction.Params.ClientID)
	if err != nil {
		return nil, err
	}
	return &model.Grant{
		ID:       u.newGrantID(),
		IssuedAt: now,
		ExpireAt: now.Add(u.cfg.GrantTTL),
		Scope:    interaction.Params.Scope,
		Remember: rememberGrant && u.cfg.EnableRememberGrant,
		Subjects: model.GrantSubjects{
			ClientID:   clientID,
			IdentityID: interaction.Result.IdentityID,
		},
	}, nil
}
