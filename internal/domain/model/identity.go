package model

// Identity represents an authenticated end user as returned by the external
// identity source. It is immutable and never persisted by this core.
type Identity struct {
	ID         IdentityID
	FiscalCode string
	GivenName  string
	FamilyName string
}
