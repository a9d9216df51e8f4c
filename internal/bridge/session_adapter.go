package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

var _ Adapter = (*sessionAdapter)(nil)

// sessionPayload is the protocol engine's wire shape for a browser session.
type sessionPayload struct {
	Jti       string `json:"jti"`
	Iat       int64  `json:"iat"`
	Exp       int64  `json:"exp"`
	UID       string `json:"uid"`
	AccountID string `json:"accountId,omitempty"`
}

type sessionAdapter struct {
	stubOps
	sessions ports.SessionService
}

func newSessionAdapter(sessions ports.SessionService) *sessionAdapter {
	return &sessionAdapter{stubOps: stubOps{kind: KindSession}, sessions: sessions}
}

func (a *sessionAdapter) Name() Kind { return KindSession }

func sessionToPayload(sess model.Session) (json.RawMessage, error) {
	p := sessionPayload{
		Jti: string(sess.ID),
		Iat: sess.IssuedAt.Unix(),
		Exp: sess.ExpireAt.Unix(),
		UID: sess.UID,
	}
	if sess.IdentityID != nil {
		p.AccountID = string(*sess.IdentityID)
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindFormat, "encode session payload")
	}
	return payload, nil
}

func (a *sessionAdapter) Find(ctx context.Context, id string) (json.RawMessage, error) {
	sess, err := a.sessions.Find(ctx, model.SessionID(id))
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	return sessionToPayload(*sess)
}

// FindByUID resolves a session payload by its uid. Unlike the other entity
// kinds the protocol engine does address sessions this way.
func (a *sessionAdapter) FindByUID(ctx context.Context, uid string) (json.RawMessage, error) {
	sess, err := a.sessions.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	return sessionToPayload(*sess)
}

func (a *sessionAdapter) Upsert(ctx context.Context, id string, payload json.RawMessage, expiresInSeconds int) error {
	var p sessionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return errors.Wrap(err, errors.KindFormat, "decode session payload")
	}

	issuedAt := time.Unix(p.Iat, 0)
	expireAt := time.Unix(p.Exp, 0)
	if p.Exp == 0 {
		expireAt = issuedAt.Add(time.Duration(expiresInSeconds) * time.Second)
	}

	sess := model.Session{
		ID:       model.SessionID(id),
		UID:      p.UID,
		IssuedAt: issuedAt,
		ExpireAt: expireAt,
	}
	if p.AccountID != "" {
		identityID := model.IdentityID(p.AccountID)
		sess.IdentityID = &identityID
	}
	_, err := a.sessions.Upsert(ctx, sess)
	return err
}

func (a *sessionAdapter) Destroy(ctx context.Context, id string) error {
	return a.sessions.Remove(ctx, model.SessionID(id))
}
