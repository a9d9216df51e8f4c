package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

var _ Adapter = (*clientAdapter)(nil)

// clientPayload is the protocol engine's wire shape for a registered client.
type clientPayload struct {
	ClientID      string   `json:"client_id"`
	ClientName    string   `json:"client_name"`
	GrantTypes    []string `json:"grant_types"`
	RedirectURIs  []string `json:"redirect_uris"`
	ResponseTypes []string `json:"response_types"`
	Scope         string   `json:"scope"`
	Iat           int64    `json:"iat"`
}

type clientAdapter struct {
	stubOps
	clients ports.ClientService
}

func newClientAdapter(clients ports.ClientService) *clientAdapter {
	return &clientAdapter{stubOps: stubOps{kind: KindClient}, clients: clients}
}

func (a *clientAdapter) Name() Kind { return KindClient }

func (a *clientAdapter) Find(ctx context.Context, id string) (json.RawMessage, error) {
	clientID, err := model.ParseClientID(id)
	if err != nil {
		return nil, err
	}
	client, err := a.clients.Find(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}

	payload, err := json.Marshal(clientPayload{
		ClientID:      client.ID.String(),
		ClientName:    client.Name,
		GrantTypes:    client.GrantTypes,
		RedirectURIs:  client.RedirectURIs,
		ResponseTypes: client.ResponseTypes,
		Scope:         client.Scope,
		Iat:           client.IssuedAt.Unix(),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.KindFormat, "encode client payload")
	}
	return payload, nil
}

func (a *clientAdapter) Upsert(ctx context.Context, id string, payload json.RawMessage, _ int) error {
	clientID, err := model.ParseClientID(id)
	if err != nil {
		return err
	}

	var p clientPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return errors.Wrap(err, errors.KindFormat, "decode client payload")
	}

	_, err = a.clients.Upsert(ctx, model.Client{
		ID:            clientID,
		Name:          p.ClientName,
		GrantTypes:    p.GrantTypes,
		RedirectURIs:  p.RedirectURIs,
		ResponseTypes: p.ResponseTypes,
		Scope:         p.Scope,
		IssuedAt:      time.Unix(p.Iat, 0),
	})
	return err
}

func (a *clientAdapter) Destroy(ctx context.Context, id string) error {
	clientID, err := model.ParseClientID(id)
	if err != nil {
		return err
	}
	return a.clients.Remove(ctx, clientID)
}
