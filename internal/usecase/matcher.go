package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/ports"
)

// findReusableGrant resolves the grant, if any, that can satisfy the given
// interaction without collecting fresh consent. It is a pure read:
//
//   - post-consent (result carries a grant id): look the grant up directly;
//     absence means it was deleted or expired out and is treated as no match,
//     not an error
//   - post-login (result carries only an identity): scan remembered grants
//     for the interaction's client and pick the first, in service-returned
//     order, with an exact scope match that has not expired
//   - pre-login: no match
func findReusableGrant(
	ctx context.Context,
	grants ports.GrantService,
	interaction model.Interaction,
	now time.Time,
) (*model.Grant, error) {
	if interaction.Result == nil || interaction.Result.IdentityID == "" {
		return nil, nil
	}
	identityID := interaction.Result.IdentityID

	if interaction.Result.GrantID != nil {
		grant, err := grants.Find(ctx, identityID, *interaction.Result.GrantID)
		if err != nil {
			return nil, fmt.Errorf("find grant: %w", err)
		}
		return grant, nil
	}

	clientID, err := model.ParseClientID(interaction.Params.ClientID)
	if err != nil {
		return nil, err
	}
	candidates, err := grants.FindBy(ctx, ports.GrantSelector{
		ClientID:   &clientID,
		IdentityID: identityID,
		Remember:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("find grants by client: %w", err)
	}
	for _, g := range candidates {
		if g.Matches(interaction.Params.Scope, now) {
			return &g, nil
		}
	}
	return nil, nil
}
