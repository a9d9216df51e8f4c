package bridge

// Package bridge translates between the engine's domain entities and the
// generic storage-adapter contract the third-party OIDC protocol engine
// requires. Wire payload field names (jti, iat, exp Unix seconds, accountId)
// are the protocol engine's, not ours; translation is this package's sole
// job.

import (
	"context"
	"encoding/json"

	"github.com/civicid/oidc-provider/internal/errors"
)

// Kind names an entity kind the protocol engine manages through an adapter.
type Kind string

const (
	KindClient                  Kind = "Client"
	KindGrant                   Kind = "Grant"
	KindInteraction             Kind = "Interaction"
	KindSession                 Kind = "Session"
	KindRegistrationAccessToken Kind = "RegistrationAccessToken"
)

// Adapter is the storage contract the protocol engine consumes, one per
// entity kind. Find returns nil for absent payloads. Operations the engine
// defines but this core's entities never use (Consume, FindByUserCode,
// RevokeByGrantID) reject with a NotImplemented error.
type Adapter interface {
	// Name returns the entity kind this adapter serves.
	Name() Kind

	Find(ctx context.Context, id string) (json.RawMessage, error)
	Upsert(ctx context.Context, id string, payload json.RawMessage, expiresInSeconds int) error
	Destroy(ctx context.Context, id string) error

	Consume(ctx context.Context, id string) error
	FindByUserCode(ctx context.Context, userCode string) (json.RawMessage, error)
	RevokeByGrantID(ctx context.Context, grantID string) error
}

// stubOps provides the rejecting implementations shared by every adapter.
type stubOps struct {
	kind Kind
}

func (s stubOps) Consume(context.Context, string) error {
	return errors.NotImplemented("consume is not implemented for " + string(s.kind))
}

func (s stubOps) FindByUserCode(context.Context, string) (json.RawMessage, error) {
	return nil, errors.NotImplemented("findByUserCode is not implemented for " + string(s.kind))
}

func (s stubOps) RevokeByGrantID(context.Context, string) error {
	return errors.NotImplemented("revokeByGrantId is not implemented for " + string(s.kind))
}

// noopAdapter serves entity kinds the provider accepts but never persists.
type noopAdapter struct {
	stubOps
}

func newNoopAdapter(kind Kind) noopAdapter {
	return noopAdapter{stubOps: stubOps{kind: kind}}
}

func (a noopAdapter) Name() Kind { return a.stubOps.kind }

func (a noopAdapter) Find(context.Context, string) (json.RawMessage, error) {
	return nil, nil
}

func (a noopAdapter) Upsert(context.Context, string, json.RawMessage, int) error {
	return nil
}

func (a noopAdapter) Destroy(context.Context, string) error {
	return nil
}
