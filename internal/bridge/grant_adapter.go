package bridge

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

var _ Adapter = (*grantAdapter)(nil)

// grantPayload is the protocol engine's wire shape for a consent record.
type grantPayload struct {
	Jti       string `json:"jti"`
	Iat       int64  `json:"iat"`
	Exp       int64  `json:"exp"`
	AccountID string `json:"accountId"`
	ClientID  string `json:"clientId"`
	Scope     string `json:"scope"`
	Remember  bool   `json:"remember"`
}

// grantWireID is the compound id the protocol engine addresses grants with:
// "<identityId>:<grantId>".
func parseGrantWireID(id string) (model.IdentityID, model.GrantID, error) {
	identity, grant, found := strings.Cut(id, ":")
	if !found || identity == "" || grant == "" {
		return "", "", errors.Formatf("invalid grant id %q", id)
	}
	return model.IdentityID(identity), model.GrantID(grant), nil
}

type grantAdapter struct {
	stubOps
	grants ports.GrantService
}

func newGrantAdapter(grants ports.GrantService) *grantAdapter {
	return &grantAdapter{stubOps: stubOps{kind: KindGrant}, grants: grants}
}

func (a *grantAdapter) Name() Kind { return KindGrant }

func (a *grantAdapter) Find(ctx context.Context, id string) (json.RawMessage, error) {
	identityID, grantID, err := parseGrantWireID(id)
	if err != nil {
		return nil, err
	}
	grant, err := a.grants.Find(ctx, identityID, grantID)
	if err != nil {
		return nil, err
	}
	if grant == nil {
		return nil, nil
	}

	payload, err := json.Marshal(grantPayload{
		Jti:       string(grant.ID),
		Iat:       grant.IssuedAt.Unix(),
		Exp:       grant.ExpireAt.Unix(),
		AccountID: string(grant.Subjects.IdentityID),
		ClientID:  grant.Subjects.ClientID.String(),
		Scope:     grant.Scope,
		Remember:  grant.Remember,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.KindFormat, "encode grant payload")
	}
	return payload, nil
}

func (a *grantAdapter) Upsert(ctx context.Context, id string, payload json.RawMessage, expiresInSeconds int) error {
	identityID, grantID, err := parseGrantWireID(id)
	if err != nil {
		return err
	}

	var p grantPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return errors.Wrap(err, errors.KindFormat, "decode grant payload")
	}
	clientID, err := model.ParseClientID(p.ClientID)
	if err != nil {
		return err
	}

	issuedAt := time.Unix(p.Iat, 0)
	expireAt := time.Unix(p.Exp, 0)
	if p.Exp == 0 {
		expireAt = issuedAt.Add(time.Duration(expiresInSeconds) * time.Second)
	}

	_, err = a.grants.Upsert(ctx, model.Grant{
		ID:       grantID,
		IssuedAt: issuedAt,
		ExpireAt: expireAt,
		Scope:    p.Scope,
		Remember: p.Remember,
		Subjects: model.GrantSubjects{
			ClientID:   clientID,
			IdentityID: identityID,
		},
	})
	return err
}

func (a *grantAdapter) Destroy(ctx context.Context, id string) error {
	identityID, grantID, err := parseGrantWireID(id)
	if err != nil {
		return err
	}
	return a.grants.Remove(ctx, identityID, grantID)
}
