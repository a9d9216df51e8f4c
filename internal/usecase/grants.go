package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

// rememberedSelector builds the selector shared by the grant management use
// cases: remembered grants of one identity, optionally narrowed to a client.
func rememberedSelector(clientID *model.ClientID, identityID model.IdentityID) ports.GrantSelector {
	return ports.GrantSelector{
		ClientID:   clientID,
		IdentityID: identityID,
		Remember:   true,
	}
}

// FindGrantUseCaseOptions groups dependencies for FindGrantUseCase.
type FindGrantUseCaseOptions struct {
	Grants ports.GrantService
}

// FindGrantUseCase resolves the remembered grant an identity holds for a
// specific client.
type FindGrantUseCase struct {
	grants ports.GrantService
}

// NewFindGrantUseCase constructs a new FindGrantUseCase.
func NewFindGrantUseCase(opts FindGrantUseCaseOptions) *FindGrantUseCase {
	if opts.Grants == nil {
		panic("usecase: FindGrantUseCase requires grants")
	}
	return &FindGrantUseCase{grants: opts.Grants}
}

// Find returns the first remembered grant for the client, in
// service-returned order.
func (u *FindGrantUseCase) Find(
	ctx context.Context,
	organizationID model.OrganizationID,
	serviceID model.ServiceID,
	identityID model.IdentityID,
) (model.Grant, error) {
	clientID := model.ClientID{OrganizationID: organizationID, ServiceID: serviceID}
	grants, err := u.grants.FindBy(ctx, rememberedSelector(&clientID, identityID))
	if err != nil {
		return model.Grant{}, err
	}
	if len(grants) == 0 {
		return model.Grant{}, errors.NotFound("Grant not found")
	}
	return grants[0], nil
}

// ListGrantUseCaseOptions groups dependencies for ListGrantUseCase.
type ListGrantUseCaseOptions struct {
	Grants ports.GrantService
}

// ListGrantUseCase lists every remembered grant an identity holds, across
// all clients.
type ListGrantUseCase struct {
	grants ports.GrantService
}

// NewListGrantUseCase constructs a new ListGrantUseCase.
func NewListGrantUseCase(opts ListGrantUseCaseOptions) *ListGrantUseCase {
	if opts.Grants == nil {
		panic("usecase: ListGrantUseCase requires grants")
	}
	return &ListGrantUseCase{grants: opts.Grants}
}

// List returns the identity's remembered grants; an empty list is a valid
// result, not an error.
func (u *ListGrantUseCase) List(ctx context.Context, identityID model.IdentityID) ([]model.Grant, error) {
	return u.grants.FindBy(ctx, rememberedSelector(nil, identityID))
}

// RemoveGrantUseCaseOptions groups dependencies for RemoveGrantUseCase.
type RemoveGrantUseCaseOptions struct {
	Grants ports.GrantService
}

// RemoveGrantUseCase revokes every remembered grant an identity holds for a
// specific client.
type RemoveGrantUseCase struct {
	grants ports.GrantService
}

// NewRemoveGrantUseCase constructs a new RemoveGrantUseCase.
func NewRemoveGrantUseCase(opts RemoveGrantUseCaseOptions) *RemoveGrantUseCase {
	if opts.Grants == nil {
		panic("usecase: RemoveGrantUseCase requires grants")
	}
	return &RemoveGrantUseCase{grants: opts.Grants}
}

// Remove fans out one removal per matching grant, unordered, and waits for
// all to settle. Grants removed before a failure stay removed; there is no
// rollback. An empty match set fails NotFound.
func (u *RemoveGrantUseCase) Remove(
	ctx context.Context,
	organizationID model.OrganizationID,
	serviceID model.ServiceID,
	identityID model.IdentityID,
) error {
	clientID := model.ClientID{OrganizationID: organizationID, ServiceID: serviceID}
	grants, err := u.grants.FindBy(ctx, rememberedSelector(&clientID, identityID))
	if err != nil {
		return err
	}
	if len(grants) == 0 {
		return errors.NotFound("Grant not found")
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, grant := range grants {
		g.Go(func() error {
			return u.grants.Remove(ctx, identityID, grant.ID)
		})
	}
	return g.Wait()
}
