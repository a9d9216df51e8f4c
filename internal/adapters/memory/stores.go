package memory

// Package memory provides map-backed implementations of the service
// contracts. They serve development mode and tests; production deployments
// use the redis and postgres adapters.

import (
	"context"
	"sort"
	"sync"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/ports"
)

// Compile-time conformance to the service contracts.
var (
	_ ports.ClientService      = (*ClientStore)(nil)
	_ ports.GrantService       = (*GrantStore)(nil)
	_ ports.InteractionService = (*InteractionStore)(nil)
	_ ports.SessionService     = (*SessionStore)(nil)
)

// ClientStore is an in-memory ClientService.
type ClientStore struct {
	mu      sync.RWMutex
	clients map[string]model.Client
}

// NewClientStore creates an empty in-memory client store.
func NewClientStore() *ClientStore {
	return &ClientStore{clients: make(map[string]model.Client)}
}

func (s *ClientStore) Find(_ context.Context, id model.ClientID) (*model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id.String()]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *ClientStore) List(_ context.Context, sel ports.ClientSelector) ([]model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Client, 0, len(s.clients))
	for _, c := range s.clients {
		if sel.OrganizationID != nil && c.ID.OrganizationID != *sel.OrganizationID {
			continue
		}
		if sel.ServiceID != nil && c.ID.ServiceID != *sel.ServiceID {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (s *ClientStore) Upsert(_ context.Context, client model.Client) (model.Client, error) {
	if err := client.Validate(); err != nil {
		return model.Client{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[client.ID.String()] = client
	return client, nil
}

func (s *ClientStore) Remove(_ context.Context, id model.ClientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id.String())
	return nil
}

// GrantStore is an in-memory GrantService. FindBy returns grants in
// most-recently-issued order, matching the postgres adapter.
type GrantStore struct {
	mu     sync.RWMutex
	grants map[grantKey]model.Grant
}

type grantKey struct {
	identityID model.IdentityID
	grantID    model.GrantID
}

// NewGrantStore creates an empty in-memory grant store.
func NewGrantStore() *GrantStore {
	return &GrantStore{grants: make(map[grantKey]model.Grant)}
}

func (s *GrantStore) Find(_ context.Context, identityID model.IdentityID, id model.GrantID) (*model.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.grants[grantKey{identityID: identityID, grantID: id}]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (s *GrantStore) FindBy(_ context.Context, sel ports.GrantSelector) ([]model.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Grant
	for _, g := range s.grants {
		if g.Subjects.IdentityID != sel.IdentityID {
			continue
		}
		if g.Remember != sel.Remember {
			continue
		}
		if sel.ClientID != nil && g.Subjects.ClientID != *sel.ClientID {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out, nil
}

func (s *GrantStore) Upsert(_ context.Context, grant model.Grant) (model.Grant, error) {
	if err := grant.Validate(); err != nil {
		return model.Grant{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[grantKey{identityID: grant.Subjects.IdentityID, grantID: grant.ID}] = grant
	return grant, nil
}

func (s *GrantStore) Remove(_ context.Context, identityID model.IdentityID, id model.GrantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants, grantKey{identityID: identityID, grantID: id})
	return nil
}

// InteractionStore is an in-memory InteractionService.
type InteractionStore struct {
	mu           sync.RWMutex
	interactions map[model.InteractionID]model.Interaction
}

// NewInteractionStore creates an empty in-memory interaction store.
func NewInteractionStore() *InteractionStore {
	return &InteractionStore{interactions: make(map[model.InteractionID]model.Interaction)}
}

func (s *InteractionStore) Find(_ context.Context, id model.InteractionID) (*model.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.interactions[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

func (s *InteractionStore) Upsert(_ context.Context, interaction model.Interaction) (model.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions[interaction.ID] = interaction
	return interaction, nil
}

func (s *InteractionStore) Remove(_ context.Context, id model.InteractionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.interactions, id)
	return nil
}

// SessionStore is an in-memory SessionService with a uid index.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]model.Session
	byUID    map[string]model.SessionID
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[model.SessionID]model.Session),
		byUID:    make(map[string]model.SessionID),
	}
}

func (s *SessionStore) Find(_ context.Context, id model.SessionID) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) FindByUID(_ context.Context, uid string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUID[uid]
	if !ok {
		return nil, nil
	}
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) Upsert(_ context.Context, session model.Session) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.sessions[session.ID]; ok && old.UID != session.UID {
		delete(s.byUID, old.UID)
	}
	s.sessions[session.ID] = session
	s.byUID[session.UID] = session.ID
	return session, nil
}

func (s *SessionStore) Remove(_ context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		delete(s.byUID, sess.UID)
		delete(s.sessions, id)
	}
	return nil
}
