package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
)

const profileDoc = `{
	"fiscal_code": "AAABBB00A00A000A",
	"name": {
		"given_name": "Ada",
		"family_name": "Lovelace"
	}
}`

func newProfileServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestNewProfileAPIProvider(t *testing.T) {
	t.Run("requires base URL", func(t *testing.T) {
		_, err := NewProfileAPIProvider(ProfileAPIConfig{})
		require.Error(t, err)
		assert.True(t, errors.IsFormat(err))
	})

	t.Run("rejects invalid claim mapping", func(t *testing.T) {
		_, err := NewProfileAPIProvider(ProfileAPIConfig{
			BaseURL: "https://backend.example.it",
			Mapping: &ClaimMapping{ID: "fiscal_code"},
		})
		require.Error(t, err)
		assert.True(t, errors.IsFormat(err))
	})
}

func TestProfileAPIProvider_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("maps profile document", func(t *testing.T) {
		server := newProfileServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/profile", r.URL.Path)
			assert.Equal(t, "Bearer valid-token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(profileDoc))
		})

		provider, err := NewProfileAPIProvider(ProfileAPIConfig{BaseURL: server.URL})
		require.NoError(t, err)

		identity, err := provider.Authenticate(ctx, "valid-token")
		require.NoError(t, err)
		assert.Equal(t, model.Identity{
			ID:         "AAABBB00A00A000A",
			FiscalCode: "AAABBB00A00A000A",
			GivenName:  "Ada",
			FamilyName: "Lovelace",
		}, identity)
	})

	t.Run("custom profile path", func(t *testing.T) {
		server := newProfileServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/me", r.URL.Path)
			_, _ = w.Write([]byte(profileDoc))
		})

		provider, err := NewProfileAPIProvider(ProfileAPIConfig{
			BaseURL:     server.URL,
			ProfilePath: "/api/v1/me",
		})
		require.NoError(t, err)

		_, err = provider.Authenticate(ctx, "valid-token")
		assert.NoError(t, err)
	})

	t.Run("rejection statuses map to unauthorized", func(t *testing.T) {
		for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized} {
			server := newProfileServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
			})

			provider, err := NewProfileAPIProvider(ProfileAPIConfig{BaseURL: server.URL})
			require.NoError(t, err)

			_, err = provider.Authenticate(ctx, "bad-token")
			assert.True(t, errors.IsUnauthorized(err), "status %d", status)
		}
	})

	t.Run("server failure maps to generic", func(t *testing.T) {
		server := newProfileServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		provider, err := NewProfileAPIProvider(ProfileAPIConfig{BaseURL: server.URL})
		require.NoError(t, err)

		_, err = provider.Authenticate(ctx, "some-token")
		assert.True(t, errors.IsGeneric(err))
	})

	t.Run("undecodable body maps to format", func(t *testing.T) {
		server := newProfileServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		})

		provider, err := NewProfileAPIProvider(ProfileAPIConfig{BaseURL: server.URL})
		require.NoError(t, err)

		_, err = provider.Authenticate(ctx, "some-token")
		assert.True(t, errors.IsFormat(err))
	})

	t.Run("custom claim mapping", func(t *testing.T) {
		server := newProfileServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{
				"sub": "user-42",
				"tax_id": "BBBCCC11B11B111B",
				"profile": {"first": "Grace", "last": "Hopper"}
			}`))
		})

		provider, err := NewProfileAPIProvider(ProfileAPIConfig{
			BaseURL: server.URL,
			Mapping: &ClaimMapping{
				ID:         "sub",
				FiscalCode: "tax_id",
				GivenName:  "profile.first",
				FamilyName: "profile.last",
			},
		})
		require.NoError(t, err)

		identity, err := provider.Authenticate(ctx, "valid-token")
		require.NoError(t, err)
		assert.Equal(t, model.IdentityID("user-42"), identity.ID)
		assert.Equal(t, "BBBCCC11B11B111B", identity.FiscalCode)
		assert.Equal(t, "Grace", identity.GivenName)
		assert.Equal(t, "Hopper", identity.FamilyName)
	})

	t.Run("missing claim maps to format", func(t *testing.T) {
		server := newProfileServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"fiscal_code": "AAABBB00A00A000A"}`))
		})

		provider, err := NewProfileAPIProvider(ProfileAPIConfig{BaseURL: server.URL})
		require.NoError(t, err)

		_, err = provider.Authenticate(ctx, "valid-token")
		assert.True(t, errors.IsFormat(err))
	})
}
