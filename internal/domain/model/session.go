package model

import "time"

// Session tracks a browser login session. IdentityID is nil until login
// completes.
type Session struct {
	ID         SessionID
	UID        string
	IdentityID *IdentityID
	IssuedAt   time.Time
	ExpireAt   time.Time
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return s.ExpireAt.Before(now)
}
