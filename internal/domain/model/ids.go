package model

// Package model contains the pure domain entities of the provider.
// It is free of storage, protocol, and framework concerns.

import (
	"strings"

	"github.com/civicid/oidc-provider/internal/errors"
)

// Typed identifiers wrapping strings. Raw strings never cross the use-case
// boundary; constructors validate once at the edge.

// IdentityID identifies an authenticated end user at the identity source.
type IdentityID string

// GrantID identifies a consent record.
type GrantID string

// InteractionID identifies a pending authorization interaction.
type InteractionID string

// SessionID identifies a browser login session.
type SessionID string

// OrganizationID is the first half of a composite client identifier.
type OrganizationID string

// ServiceID is the second half of a composite client identifier.
type ServiceID string

// ParseIdentityID validates and wraps an identity identifier.
func ParseIdentityID(s string) (IdentityID, error) {
	if strings.TrimSpace(s) == "" {
		return "", errors.Format("identity id must not be empty")
	}
	return IdentityID(s), nil
}

// ParseGrantID validates and wraps a grant identifier.
func ParseGrantID(s string) (GrantID, error) {
	if strings.TrimSpace(s) == "" {
		return "", errors.Format("grant id must not be empty")
	}
	return GrantID(s), nil
}

// ParseInteractionID validates and wraps an interaction identifier.
func ParseInteractionID(s string) (InteractionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", errors.Format("interaction id must not be empty")
	}
	return InteractionID(s), nil
}

// ClientID is the composite natural key of a registered client, encoded on
// the wire as "<organizationId>:<serviceId>".
type ClientID struct {
	OrganizationID OrganizationID
	ServiceID      ServiceID
}

// ClientIDSeparator joins the two halves of a serialized ClientID.
const ClientIDSeparator = ":"

// ParseClientID decodes the composite "<organizationId>:<serviceId>" form.
func ParseClientID(s string) (ClientID, error) {
	org, svc, found := strings.Cut(s, ClientIDSeparator)
	if !found || org == "" || svc == "" || strings.Contains(svc, ClientIDSeparator) {
		return ClientID{}, errors.Formatf("invalid client id %q", s)
	}
	return ClientID{OrganizationID: OrganizationID(org), ServiceID: ServiceID(svc)}, nil
}

// String encodes the composite form.
func (c ClientID) String() string {
	return string(c.OrganizationID) + ClientIDSeparator + string(c.ServiceID)
}

// IsZero reports whether both halves are unset.
func (c ClientID) IsZero() bool {
	return c.OrganizationID == "" && c.ServiceID == ""
}
