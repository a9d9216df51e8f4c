package bridge

import (
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

// RegistryOptions groups the services the per-kind adapters dispatch to.
type RegistryOptions struct {
	Clients      ports.ClientService
	Grants       ports.GrantService
	Interactions ports.InteractionService
	Sessions     ports.SessionService
}

// Registry is the explicit kind-to-adapter dispatch table handed to the
// protocol engine. It is built once at startup and passed by reference;
// there is no ambient global lookup.
type Registry struct {
	adapters map[Kind]Adapter
}

// NewRegistry builds the dispatch table for every entity kind the protocol
// engine manages.
func NewRegistry(opts RegistryOptions) *Registry {
	if opts.Clients == nil || opts.Grants == nil || opts.Interactions == nil || opts.Sessions == nil {
		panic("bridge: Registry requires clients, grants, interactions, and sessions")
	}
	return &Registry{
		adapters: map[Kind]Adapter{
			KindClient:                  newClientAdapter(opts.Clients),
			KindGrant:                   newGrantAdapter(opts.Grants),
			KindInteraction:             newInteractionAdapter(opts.Interactions),
			KindSession:                 newSessionAdapter(opts.Sessions),
			KindRegistrationAccessToken: newNoopAdapter(KindRegistrationAccessToken),
		},
	}
}

// Get resolves the adapter for an entity kind. Unknown kinds fail
// NotImplemented so the protocol engine surfaces them loudly instead of
// silently losing state.
func (r *Registry) Get(kind Kind) (Adapter, error) {
	adapter, ok := r.adapters[kind]
	if !ok {
		return nil, errors.NotImplemented("no adapter for entity kind " + string(kind))
	}
	return adapter, nil
}

// Kinds lists the registered entity kinds.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.adapters))
	for k := range r.adapters {
		kinds = append(kinds, k)
	}
	return kinds
}
