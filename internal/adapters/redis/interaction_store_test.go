package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/testutil"
)

func TestInteractionStore_RoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewInteractionStore(client)
	ctx := context.Background()

	interaction := testutil.NewInteraction().Build()
	_, err := store.Upsert(ctx, interaction)
	require.NoError(t, err)

	found, err := store.Find(ctx, interaction.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, interaction.ID, found.ID)
	assert.Equal(t, interaction.Params, found.Params)

	require.NoError(t, store.Remove(ctx, interaction.ID))
	gone, err := store.Find(ctx, interaction.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestInteractionStore_FindAbsent(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewInteractionStore(client)

	found, err := store.Find(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestInteractionStore_RejectsExpiredUpsert(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewInteractionStore(client)

	interaction := testutil.NewInteraction().Build()
	interaction.ExpireAt = time.Now().Add(-time.Minute)

	_, err := store.Upsert(context.Background(), interaction)
	require.Error(t, err)
	assert.True(t, errors.IsFormat(err))
}

func TestInteractionStore_RejectsEmptyID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewInteractionStore(client)

	interaction := testutil.NewInteraction().WithID("").Build()
	_, err := store.Upsert(context.Background(), interaction)
	require.Error(t, err)
	assert.True(t, errors.IsFormat(err))
}

func TestInteractionStore_KeyTTLTracksExpiry(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewInteractionStore(client)
	ctx := context.Background()

	interaction := testutil.NewInteraction().Build()
	interaction.ExpireAt = time.Now().Add(10 * time.Minute)
	_, err := store.Upsert(ctx, interaction)
	require.NoError(t, err)

	ttl, err := client.TTL(ctx, "interaction:"+string(interaction.ID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute)
}

func TestInteractionStore_ResultSurvivesRoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewInteractionStore(client)
	ctx := context.Background()

	grantID := model.GrantID("grant-1")
	interaction := testutil.NewInteraction().Consented("identity-1", grantID).Build()
	_, err := store.Upsert(ctx, interaction)
	require.NoError(t, err)

	found, err := store.Find(ctx, interaction.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.Result)
	assert.Equal(t, model.IdentityID("identity-1"), found.Result.IdentityID)
	require.NotNil(t, found.Result.GrantID)
	assert.Equal(t, grantID, *found.Result.GrantID)
}
