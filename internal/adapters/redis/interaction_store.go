package redis

// Package redis provides Redis-backed implementations of the interaction and
// session contracts. Both entity kinds are short-lived and expiry-driven,
// which maps directly onto key TTLs.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

var _ ports.InteractionService = (*InteractionStore)(nil)

// InteractionStore persists pending authorization interactions in Redis.
type InteractionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewInteractionStore creates a Redis-backed interaction store.
func NewInteractionStore(client redis.UniversalClient) *InteractionStore {
	return &InteractionStore{client: client, prefix: "interaction:"}
}

// interactionRecord is the stored JSON shape of an Interaction.
type interactionRecord struct {
	ID       string                   `json:"id"`
	IssuedAt time.Time                `json:"issuedAt"`
	ExpireAt time.Time                `json:"expireAt"`
	Params   model.InteractionParams  `json:"params"`
	Payload  json.RawMessage          `json:"payload,omitempty"`
	Result   *model.InteractionResult `json:"result,omitempty"`
}

func toInteractionRecord(i model.Interaction) interactionRecord {
	return interactionRecord{
		ID:       string(i.ID),
		IssuedAt: i.IssuedAt,
		ExpireAt: i.ExpireAt,
		Params:   i.Params,
		Payload:  i.Payload,
		Result:   i.Result,
	}
}

func (r interactionRecord) toModel() model.Interaction {
	return model.Interaction{
		ID:       model.InteractionID(r.ID),
		IssuedAt: r.IssuedAt,
		ExpireAt: r.ExpireAt,
		Params:   r.Params,
		Payload:  r.Payload,
		Result:   r.Result,
	}
}

func (s *InteractionStore) Find(ctx context.Context, id model.InteractionID) (*model.Interaction, error) {
	data, err := s.client.Get(ctx, s.prefix+string(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.KindGeneric, "redis get interaction")
	}

	var rec interactionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, errors.Wrap(err, errors.KindFormat, "decode stored interaction")
	}
	interaction := rec.toModel()

	// The key TTL normally covers this, but re-check in case of clock skew.
	if interaction.Expired(time.Now()) {
		if err := s.Remove(ctx, id); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &interaction, nil
}

func (s *InteractionStore) Upsert(ctx context.Context, interaction model.Interaction) (model.Interaction, error) {
	if interaction.ID == "" {
		return model.Interaction{}, errors.Format("interaction id must not be empty")
	}
	ttl := time.Until(interaction.ExpireAt)
	if ttl <= 0 {
		return model.Interaction{}, errors.Format("interaction is already expired")
	}

	data, err := json.Marshal(toInteractionRecord(interaction))
	if err != nil {
		return model.Interaction{}, errors.Wrap(err, errors.KindFormat, "encode interaction")
	}
	if err := s.client.Set(ctx, s.prefix+string(interaction.ID), data, ttl).Err(); err != nil {
		return model.Interaction{}, errors.Wrap(err, errors.KindGeneric, "redis set interaction")
	}
	return interaction, nil
}

func (s *InteractionStore) Remove(ctx context.Context, id model.InteractionID) error {
	if err := s.client.Del(ctx, s.prefix+string(id)).Err(); err != nil {
		return errors.Wrap(err, errors.KindGeneric, "redis del interaction")
	}
	return nil
}
