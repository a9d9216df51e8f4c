package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/mocks"
	"github.com/civicid/oidc-provider/internal/testutil"
)

func TestAbortInteraction(t *testing.T) {
	ctx := context.Background()

	t.Run("existing interaction passes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		interactionSvc := mocks.NewMockInteractionService(ctrl)

		interaction := testutil.NewInteraction().Build()
		interactionSvc.EXPECT().
			Find(gomock.Any(), interaction.ID).
			Return(&interaction, nil)

		uc := NewAbortInteractionUseCase(AbortInteractionUseCaseOptions{Interactions: interactionSvc})

		assert.NoError(t, uc.Abort(ctx, interaction.ID))
	})

	t.Run("missing interaction fails not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		interactionSvc := mocks.NewMockInteractionService(ctrl)
		interactionSvc.EXPECT().
			Find(gomock.Any(), model.InteractionID("missing")).
			Return(nil, nil)

		uc := NewAbortInteractionUseCase(AbortInteractionUseCaseOptions{Interactions: interactionSvc})

		err := uc.Abort(ctx, "missing")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
		assert.Contains(t, err.Error(), "Interaction not found")
	})

	t.Run("service failure passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		interactionSvc := mocks.NewMockInteractionService(ctrl)

		boom := errors.Generic("store down")
		interactionSvc.EXPECT().
			Find(gomock.Any(), gomock.Any()).
			Return(nil, boom)

		uc := NewAbortInteractionUseCase(AbortInteractionUseCaseOptions{Interactions: interactionSvc})

		assert.ErrorIs(t, uc.Abort(ctx, "interaction-1"), boom)
	})
}
