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

func testSession(id model.SessionID, uid string) model.Session {
	now := time.Now()
	return model.Session{
		ID:       id,
		UID:      uid,
		IssuedAt: now,
		ExpireAt: now.Add(24 * time.Hour),
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	identityID := model.IdentityID("identity-1")
	sess := testSession("session-1", "uid-1")
	sess.IdentityID = &identityID

	_, err := store.Upsert(ctx, sess)
	require.NoError(t, err)

	found, err := store.Find(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "uid-1", found.UID)
	require.NotNil(t, found.IdentityID)
	assert.Equal(t, identityID, *found.IdentityID)
}

func TestSessionStore_FindByUID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	_, err := store.Upsert(ctx, testSession("session-1", "uid-1"))
	require.NoError(t, err)

	found, err := store.FindByUID(ctx, "uid-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, model.SessionID("session-1"), found.ID)

	missing, err := store.FindByUID(ctx, "uid-unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionStore_RemoveDropsUIDIndex(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	_, err := store.Upsert(ctx, testSession("session-1", "uid-1"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, "session-1"))

	bySession, err := store.Find(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, bySession)

	byUID, err := store.FindByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Nil(t, byUID)

	// Removing an absent session is not an error.
	assert.NoError(t, store.Remove(ctx, "session-1"))
}

func TestSessionStore_RejectsExpiredUpsert(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)

	sess := testSession("session-1", "uid-1")
	sess.ExpireAt = time.Now().Add(-time.Minute)

	_, err := store.Upsert(context.Background(), sess)
	require.Error(t, err)
	assert.True(t, errors.IsFormat(err))
}
