package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

var _ Adapter = (*interactionAdapter)(nil)

// interactionEnvelope is the subset of the protocol engine's interaction
// payload this core reads. The full payload is carried opaquely on the
// entity and round-tripped on Find.
type interactionEnvelope struct {
	Jti    string                   `json:"jti"`
	Iat    int64                    `json:"iat"`
	Exp    int64                    `json:"exp"`
	Params model.InteractionParams  `json:"params"`
	Result *model.InteractionResult `json:"result,omitempty"`
}

type interactionAdapter struct {
	stubOps
	interactions ports.InteractionService
}

func newInteractionAdapter(interactions ports.InteractionService) *interactionAdapter {
	return &interactionAdapter{stubOps: stubOps{kind: KindInteraction}, interactions: interactions}
}

func (a *interactionAdapter) Name() Kind { return KindInteraction }

func (a *interactionAdapter) Find(ctx context.Context, id string) (json.RawMessage, error) {
	interactionID, err := model.ParseInteractionID(id)
	if err != nil {
		return nil, err
	}
	interaction, err := a.interactions.Find(ctx, interactionID)
	if err != nil {
		return nil, err
	}
	if interaction == nil {
		return nil, nil
	}
	return mergeInteractionPayload(*interaction)
}

// mergeInteractionPayload rehydrates the engine's payload blob, overlaying
// the result this core may have attached since the blob was stored.
func mergeInteractionPayload(interaction model.Interaction) (json.RawMessage, error) {
	doc := map[string]json.RawMessage{}
	if len(interaction.Payload) > 0 {
		if err := json.Unmarshal(interaction.Payload, &doc); err != nil {
			return nil, errors.Wrap(err, errors.KindFormat, "decode stored interaction payload")
		}
	}

	set := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return errors.Wrapf(err, errors.KindFormat, "encode interaction %s", key)
		}
		doc[key] = raw
		return nil
	}
	if err := set("jti", string(interaction.ID)); err != nil {
		return nil, err
	}
	if err := set("iat", interaction.IssuedAt.Unix()); err != nil {
		return nil, err
	}
	if err := set("exp", interaction.ExpireAt.Unix()); err != nil {
		return nil, err
	}
	if err := set("params", interaction.Params); err != nil {
		return nil, err
	}
	if interaction.Result != nil {
		if err := set("result", interaction.Result); err != nil {
			return nil, err
		}
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindFormat, "encode interaction payload")
	}
	return payload, nil
}

func (a *interactionAdapter) Upsert(ctx context.Context, id string, payload json.RawMessage, expiresInSeconds int) error {
	interactionID, err := model.ParseInteractionID(id)
	if err != nil {
		return err
	}

	var env interactionEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return errors.Wrap(err, errors.KindFormat, "decode interaction payload")
	}

	issuedAt := time.Unix(env.Iat, 0)
	expireAt := time.Unix(env.Exp, 0)
	if env.Exp == 0 {
		expireAt = issuedAt.Add(time.Duration(expiresInSeconds) * time.Second)
	}

	_, err = a.interactions.Upsert(ctx, model.Interaction{
		ID:       interactionID,
		IssuedAt: issuedAt,
		ExpireAt: expireAt,
		Params:   env.Params,
		Payload:  payload,
		Result:   env.Result,
	})
	return err
}

func (a *interactionAdapter) Destroy(ctx context.Context, id string) error {
	interactionID, err := model.ParseInteractionID(id)
	if err != nil {
		return err
	}
	return a.interactions.Remove(ctx, interactionID)
}
