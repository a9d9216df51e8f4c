package model

import (
	"time"

	"github.com/civicid/oidc-provider/internal/errors"
)

// GrantSubjects pins a grant to the client and identity it was issued for.
type GrantSubjects struct {
	ClientID   ClientID
	IdentityID IdentityID
}

// Grant is a persisted consent record letting a client reuse a previous
// authorization for a given identity and scope. Immutable once created,
// except for deletion.
type Grant struct {
	ID       GrantID
	IssuedAt time.Time
	ExpireAt time.Time
	Scope    string
	Remember bool
	Subjects GrantSubjects
}

// Validate checks the invariants a grant must satisfy.
func (g Grant) Validate() error {
	if g.ID == "" {
		return errors.Format("grant id is required")
	}
	if !g.ExpireAt.After(g.IssuedAt) {
		return errors.Format("grant expiry must be after issuance")
	}
	if g.Subjects.ClientID.IsZero() {
		return errors.Format("grant client subject is required")
	}
	if g.Subjects.IdentityID == "" {
		return errors.Format("grant identity subject is required")
	}
	return nil
}

// Valid reports whether the grant is still usable at the given instant.
func (g Grant) Valid(now time.Time) bool {
	return !g.ExpireAt.Before(now)
}

// Matches reports whether the grant can satisfy a request for the given
// scope at the given instant. Scope comparison is exact.
func (g Grant) Matches(scope string, now time.Time) bool {
	return g.Valid(now) && ScopeEqual(g.Scope, scope)
}
