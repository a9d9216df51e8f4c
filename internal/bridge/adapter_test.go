package bridge

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicid/oidc-provider/internal/adapters/memory"
	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
)

func TestStubOps_RejectNotImplemented(t *testing.T) {
	registry := newTestRegistry()
	adapter, err := registry.Get(KindClient)
	require.NoError(t, err)

	ctx := context.Background()

	assert.True(t, errors.IsNotImplemented(adapter.Consume(ctx, "x")))

	_, err = adapter.FindByUserCode(ctx, "x")
	assert.True(t, errors.IsNotImplemented(err))

	assert.True(t, errors.IsNotImplemented(adapter.RevokeByGrantID(ctx, "x")))
}

func TestNoopAdapter(t *testing.T) {
	registry := newTestRegistry()
	adapter, err := registry.Get(KindRegistrationAccessToken)
	require.NoError(t, err)

	ctx := context.Background()

	payload, err := adapter.Find(ctx, "token-1")
	require.NoError(t, err)
	assert.Nil(t, payload)

	assert.NoError(t, adapter.Upsert(ctx, "token-1", json.RawMessage(`{}`), 60))
	assert.NoError(t, adapter.Destroy(ctx, "token-1"))
}

func TestClientAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	clients := memory.NewClientStore()
	adapter := newClientAdapter(clients)

	payload := json.RawMessage(`{
		"client_id": "org-1:svc-1",
		"client_name": "Example RP",
		"grant_types": ["implicit"],
		"redirect_uris": ["https://rp.example.com/callback"],
		"response_types": ["id_token"],
		"scope": "openid profile",
		"iat": 1700000000
	}`)
	require.NoError(t, adapter.Upsert(ctx, "org-1:svc-1", payload, 0))

	stored, err := clients.Find(ctx, model.ClientID{OrganizationID: "org-1", ServiceID: "svc-1"})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Example RP", stored.Name)
	assert.Equal(t, time.Unix(1700000000, 0), stored.IssuedAt)

	found, err := adapter.Find(ctx, "org-1:svc-1")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(found, &decoded))
	assert.Equal(t, "org-1:svc-1", decoded["client_id"])
	assert.Equal(t, "openid profile", decoded["scope"])
	assert.EqualValues(t, 1700000000, decoded["iat"])

	require.NoError(t, adapter.Destroy(ctx, "org-1:svc-1"))
	gone, err := adapter.Find(ctx, "org-1:svc-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestClientAdapter_RejectsBadID(t *testing.T) {
	adapter := newClientAdapter(memory.NewClientStore())

	_, err := adapter.Find(context.Background(), "not-composite")
	assert.True(t, errors.IsFormat(err))
}

func TestParseGrantWireID(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		identity    model.IdentityID
		grant       model.GrantID
		expectError bool
	}{
		{name: "valid", input: "identity-1:grant-1", identity: "identity-1", grant: "grant-1"},
		{name: "missing separator", input: "grant-1", expectError: true},
		{name: "empty identity", input: ":grant-1", expectError: true},
		{name: "empty grant", input: "identity-1:", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, grant, err := parseGrantWireID(tt.input)
			if tt.expectError {
				assert.True(t, errors.IsFormat(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.identity, identity)
			assert.Equal(t, tt.grant, grant)
		})
	}
}

func TestGrantAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	grants := memory.NewGrantStore()
	adapter := newGrantAdapter(grants)

	payload := json.RawMessage(`{
		"jti": "grant-1",
		"iat": 1700000000,
		"exp": 1700003600,
		"accountId": "identity-1",
		"clientId": "org-1:svc-1",
		"scope": "openid profile",
		"remember": true
	}`)
	require.NoError(t, adapter.Upsert(ctx, "identity-1:grant-1", payload, 0))

	stored, err := grants.Find(ctx, "identity-1", "grant-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, time.Unix(1700003600, 0), stored.ExpireAt)
	assert.True(t, stored.Remember)

	found, err := adapter.Find(ctx, "identity-1:grant-1")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(found, &decoded))
	assert.Equal(t, "grant-1", decoded["jti"])
	assert.Equal(t, "identity-1", decoded["accountId"])
	assert.Equal(t, "org-1:svc-1", decoded["clientId"])
	assert.EqualValues(t, 1700003600, decoded["exp"])

	require.NoError(t, adapter.Destroy(ctx, "identity-1:grant-1"))
	gone, err := adapter.Find(ctx, "identity-1:grant-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestGrantAdapter_ExpiryFromTTLWhenExpAbsent(t *testing.T) {
	ctx := context.Background()
	grants := memory.NewGrantStore()
	adapter := newGrantAdapter(grants)

	payload := json.RawMessage(`{
		"jti": "grant-1",
		"iat": 1700000000,
		"accountId": "identity-1",
		"clientId": "org-1:svc-1",
		"scope": "openid"
	}`)
	require.NoError(t, adapter.Upsert(ctx, "identity-1:grant-1", payload, 600))

	stored, err := grants.Find(ctx, "identity-1", "grant-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, time.Unix(1700000000, 0).Add(10*time.Minute), stored.ExpireAt)
}

func TestInteractionAdapter_MergePreservesOpaquePayload(t *testing.T) {
	ctx := context.Background()
	interactions := memory.NewInteractionStore()
	adapter := newInteractionAdapter(interactions)

	payload := json.RawMessage(`{
		"jti": "interaction-1",
		"iat": 1700000000,
		"exp": 1700000600,
		"params": {
			"client_id": "org-1:svc-1",
			"redirect_uri": "https://rp.example.com/callback",
			"response_type": "code",
			"scope": "openid profile",
			"state": "state-1"
		},
		"prompt": {"name": "login"},
		"returnTo": "https://op.example.com/auth/abc"
	}`)
	require.NoError(t, adapter.Upsert(ctx, "interaction-1", payload, 0))

	// Simulate the core attaching a result after consent.
	stored, err := interactions.Find(ctx, "interaction-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	grantID := model.GrantID("grant-1")
	stored.Result = &model.InteractionResult{IdentityID: "identity-1", GrantID: &grantID}
	_, err = interactions.Upsert(ctx, *stored)
	require.NoError(t, err)

	merged, err := adapter.Find(ctx, "interaction-1")
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(merged, &decoded))

	// Engine-owned fields survive untouched.
	assert.JSONEq(t, `{"name": "login"}`, string(decoded["prompt"]))
	assert.JSONEq(t, `"https://op.example.com/auth/abc"`, string(decoded["returnTo"]))

	// The result written by the core is overlaid.
	var result model.InteractionResult
	require.NoError(t, json.Unmarshal(decoded["result"], &result))
	assert.Equal(t, model.IdentityID("identity-1"), result.IdentityID)
	require.NotNil(t, result.GrantID)
	assert.Equal(t, grantID, *result.GrantID)
}

func TestSessionAdapter_FindByUID(t *testing.T) {
	ctx := context.Background()
	sessions := memory.NewSessionStore()
	adapter := newSessionAdapter(sessions)

	payload := json.RawMessage(`{
		"jti": "session-1",
		"iat": 1700000000,
		"exp": 1700086400,
		"uid": "uid-1",
		"accountId": "identity-1"
	}`)
	require.NoError(t, adapter.Upsert(ctx, "session-1", payload, 0))

	byUID, err := adapter.FindByUID(ctx, "uid-1")
	require.NoError(t, err)
	require.NotNil(t, byUID)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(byUID, &decoded))
	assert.Equal(t, "session-1", decoded["jti"])
	assert.Equal(t, "identity-1", decoded["accountId"])

	missing, err := adapter.FindByUID(ctx, "uid-unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, adapter.Destroy(ctx, "session-1"))
	gone, err := adapter.FindByUID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
