package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testGrant(now time.Time) Grant {
	return Grant{
		ID:       "grant-1",
		IssuedAt: now.Add(-time.Minute),
		ExpireAt: now.Add(time.Hour),
		Scope:    "openid profile",
		Remember: true,
		Subjects: GrantSubjects{
			ClientID:   ClientID{OrganizationID: "org-1", ServiceID: "svc-1"},
			IdentityID: "identity-1",
		},
	}
}

func TestGrant_Validate(t *testing.T) {
	now := time.Now()

	t.Run("valid grant", func(t *testing.T) {
		assert.NoError(t, testGrant(now).Validate())
	})

	t.Run("missing id", func(t *testing.T) {
		g := testGrant(now)
		g.ID = ""
		assert.Error(t, g.Validate())
	})

	t.Run("expiry not after issuance", func(t *testing.T) {
		g := testGrant(now)
		g.ExpireAt = g.IssuedAt
		assert.Error(t, g.Validate())
	})

	t.Run("missing client subject", func(t *testing.T) {
		g := testGrant(now)
		g.Subjects.ClientID = ClientID{}
		assert.Error(t, g.Validate())
	})

	t.Run("missing identity subject", func(t *testing.T) {
		g := testGrant(now)
		g.Subjects.IdentityID = ""
		assert.Error(t, g.Validate())
	})
}

func TestGrant_Valid(t *testing.T) {
	now := time.Now()
	g := testGrant(now)

	assert.True(t, g.Valid(now))
	assert.True(t, g.Valid(g.ExpireAt), "a grant expiring exactly now is still valid")
	assert.False(t, g.Valid(g.ExpireAt.Add(time.Nanosecond)))
}

func TestGrant_Matches(t *testing.T) {
	now := time.Now()
	g := testGrant(now)

	t.Run("exact scope matches", func(t *testing.T) {
		assert.True(t, g.Matches("openid profile", now))
	})

	t.Run("scope subset does not match", func(t *testing.T) {
		assert.False(t, g.Matches("openid", now))
	})

	t.Run("scope superset does not match", func(t *testing.T) {
		assert.False(t, g.Matches("openid profile email", now))
	})

	t.Run("reordered scope does not match", func(t *testing.T) {
		assert.False(t, g.Matches("profile openid", now))
	})

	t.Run("expired grant does not match", func(t *testing.T) {
		assert.False(t, g.Matches("openid profile", g.ExpireAt.Add(time.Second)))
	})
}

func TestScopeHelpers(t *testing.T) {
	assert.Equal(t, []string{"openid", "profile"}, SplitScope("openid  profile"))
	assert.Empty(t, SplitScope(""))
	assert.Empty(t, SplitScope("   "))

	assert.True(t, ScopeEqual("openid profile", "openid profile"))
	assert.False(t, ScopeEqual("openid profile", "profile openid"))
}
