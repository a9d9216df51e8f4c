package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

var _ ports.SessionService = (*SessionStore)(nil)

// SessionStore persists browser login sessions in Redis. A secondary
// "uid" key indexes sessions by their uid with the same TTL as the session
// itself.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client, prefix: "session:"}
}

// sessionRecord is the stored JSON shape of a Session.
type sessionRecord struct {
	ID         string    `json:"id"`
	UID        string    `json:"uid"`
	IdentityID *string   `json:"identityId,omitempty"`
	IssuedAt   time.Time `json:"issuedAt"`
	ExpireAt   time.Time `json:"expireAt"`
}

func toSessionRecord(s model.Session) sessionRecord {
	rec := sessionRecord{
		ID:       string(s.ID),
		UID:      s.UID,
		IssuedAt: s.IssuedAt,
		ExpireAt: s.ExpireAt,
	}
	if s.IdentityID != nil {
		id := string(*s.IdentityID)
		rec.IdentityID = &id
	}
	return rec
}

func (r sessionRecord) toModel() model.Session {
	sess := model.Session{
		ID:       model.SessionID(r.ID),
		UID:      r.UID,
		IssuedAt: r.IssuedAt,
		ExpireAt: r.ExpireAt,
	}
	if r.IdentityID != nil {
		id := model.IdentityID(*r.IdentityID)
		sess.IdentityID = &id
	}
	return sess
}

func (s *SessionStore) key(id model.SessionID) string { return s.prefix + string(id) }

func (s *SessionStore) uidKey(uid string) string { return s.prefix + "uid:" + uid }

func (s *SessionStore) Find(ctx context.Context, id model.SessionID) (*model.Session, error) {
	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.KindGeneric, "redis get session")
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, errors.Wrap(err, errors.KindFormat, "decode stored session")
	}
	sess := rec.toModel()

	// The key TTL normally covers this, but re-check in case of clock skew.
	if sess.Expired(time.Now()) {
		if err := s.Remove(ctx, id); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) FindByUID(ctx context.Context, uid string) (*model.Session, error) {
	id, err := s.client.Get(ctx, s.uidKey(uid)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.KindGeneric, "redis get session uid index")
	}
	return s.Find(ctx, model.SessionID(id))
}

func (s *SessionStore) Upsert(ctx context.Context, session model.Session) (model.Session, error) {
	if session.ID == "" {
		return model.Session{}, errors.Format("session id must not be empty")
	}
	ttl := time.Until(session.ExpireAt)
	if ttl <= 0 {
		return model.Session{}, errors.Format("session is already expired")
	}

	data, err := json.Marshal(toSessionRecord(session))
	if err != nil {
		return model.Session{}, errors.Wrap(err, errors.KindFormat, "encode session")
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(session.ID), data, ttl)
	pipe.Set(ctx, s.uidKey(session.UID), string(session.ID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return model.Session{}, errors.Wrap(err, errors.KindGeneric, "redis set session")
	}
	return session, nil
}

func (s *SessionStore) Remove(ctx context.Context, id model.SessionID) error {
	// Fetch first so the uid index key can be dropped alongside.
	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return errors.Wrap(err, errors.KindGeneric, "redis get session")
	}

	keys := []string{s.key(id)}
	var rec sessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err == nil && rec.UID != "" {
		keys = append(keys, s.uidKey(rec.UID))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Wrap(err, errors.KindGeneric, "redis del session")
	}
	return nil
}
