package model

import (
	"encoding/json"
	"time"
)

// InteractionParams carries the authorization request parameters the client
// started the interaction with. ClientID stays in its serialized composite
// form here because that is how the protocol engine hands it over.
type InteractionParams struct {
	ClientID     string  `json:"client_id"`
	RedirectURI  string  `json:"redirect_uri"`
	ResponseType string  `json:"response_type"`
	Scope        string  `json:"scope"`
	State        string  `json:"state"`
	Nonce        *string `json:"nonce,omitempty"`
	ResponseMode *string `json:"response_mode,omitempty"`
}

// InteractionResult records how far an interaction has progressed. The
// progression is monotonic: unset → identity → identity+grant, or a terminal
// error. It never regresses.
type InteractionResult struct {
	IdentityID IdentityID `json:"identityId,omitempty"`
	GrantID    *GrantID   `json:"grantId,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Interaction is a pending authorization request awaiting authentication or
// consent. Payload is the protocol engine's opaque state blob; this core
// round-trips it untouched.
type Interaction struct {
	ID       InteractionID
	IssuedAt time.Time
	ExpireAt time.Time
	Params   InteractionParams
	Payload  json.RawMessage
	Result   *InteractionResult
}

// Authenticated reports whether a login has completed for this interaction.
func (i Interaction) Authenticated() bool {
	return i.Result != nil && i.Result.IdentityID != "" && i.Result.Error == ""
}

// Consented reports whether a grant has been linked to this interaction.
func (i Interaction) Consented() bool {
	return i.Authenticated() && i.Result.GrantID != nil
}

// Expired reports whether the interaction has passed its expiry.
func (i Interaction) Expired(now time.Time) bool {
	return i.ExpireAt.Before(now)
}
