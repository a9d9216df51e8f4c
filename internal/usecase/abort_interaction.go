package usecase

import (
	"context"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

// AbortInteractionUseCaseOptions groups dependencies for
// AbortInteractionUseCase.
type AbortInteractionUseCaseOptions struct {
	Interactions ports.InteractionService
}

// AbortInteractionUseCase validates that an interaction exists before the
// caller signals access denial to the protocol engine. It performs no
// mutation; the deny signaling itself belongs to the protocol adapter
// bridge.
type AbortInteractionUseCase struct {
	interactions ports.InteractionService
}

// NewAbortInteractionUseCase constructs a new AbortInteractionUseCase.
func NewAbortInteractionUseCase(opts AbortInteractionUseCaseOptions) *AbortInteractionUseCase {
	if opts.Interactions == nil {
		panic("usecase: AbortInteractionUseCase requires interactions")
	}
	return &AbortInteractionUseCase{interactions: opts.Interactions}
}

// Abort checks the interaction for existence.
func (u *AbortInteractionUseCase) Abort(ctx context.Context, id model.InteractionID) error {
	interaction, err := u.interactions.Find(ctx, id)
	if err != nil {
		return err
	}
	if interaction == nil {
		return errors.NotFound("Interaction not found")
	}
	return nil
}
