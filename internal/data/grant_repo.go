package data

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/civicid/oidc-provider/internal/data/pgxutil"
	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

var _ ports.GrantService = (*GrantRepo)(nil)

// GrantRepo provides database operations for consent records.
type GrantRepo struct {
	DB *sql.DB
}

// NewGrantRepo creates a new GrantRepo.
func NewGrantRepo(db *sql.DB) *GrantRepo {
	return &GrantRepo{DB: db}
}

const grantColumns = `id, identity_id, organization_id, service_id, scope, remember, issued_at, expire_at`

func scanGrant(row pgx.Row) (model.Grant, error) {
	var (
		g            model.Grant
		id, identity string
		org, svc     string
	)
	if err := row.Scan(&id, &identity, &org, &svc, &g.Scope, &g.Remember, &g.IssuedAt, &g.ExpireAt); err != nil {
		return model.Grant{}, err
	}
	g.ID = model.GrantID(id)
	g.Subjects = model.GrantSubjects{
		ClientID:   model.ClientID{OrganizationID: model.OrganizationID(org), ServiceID: model.ServiceID(svc)},
		IdentityID: model.IdentityID(identity),
	}
	return g, nil
}

// Find returns the grant with the given id for the identity, or nil when
// absent.
func (r *GrantRepo) Find(ctx context.Context, identityID model.IdentityID, id model.GrantID) (*model.Grant, error) {
	var out *model.Grant
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx, `
			SELECT `+grantColumns+`
			FROM grants
			WHERE identity_id = $1 AND id = $2
		`, string(identityID), string(id))
		g, err := scanGrant(row)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil
			}
			return err
		}
		out = &g
		return nil
	})
	if err != nil {
		return nil, errors.MapDBError(err)
	}
	return out, nil
}

// FindBy returns grants matching the selector, most recently issued first.
// That ordering is the one callers taking "the first match" rely on.
func (r *GrantRepo) FindBy(ctx context.Context, sel ports.GrantSelector) ([]model.Grant, error) {
	query := `
		SELECT ` + grantColumns + `
		FROM grants
		WHERE identity_id = $1
		  AND remember = $2
		  AND ($3::text IS NULL OR organization_id = $3)
		  AND ($4::text IS NULL OR service_id = $4)
		ORDER BY issued_at DESC`

	var org, svc *string
	if sel.ClientID != nil {
		o := string(sel.ClientID.OrganizationID)
		s := string(sel.ClientID.ServiceID)
		org, svc = &o, &s
	}

	var out []model.Grant
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, string(sel.IdentityID), sel.Remember, org, svc)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			g, err := scanGrant(rows)
			if err != nil {
				return err
			}
			out = append(out, g)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errors.MapDBError(err)
	}
	return out, nil
}

// Upsert inserts or replaces a grant record.
func (r *GrantRepo) Upsert(ctx context.Context, grant model.Grant) (model.Grant, error) {
	if err := grant.Validate(); err != nil {
		return model.Grant{}, err
	}
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO grants (
				id, identity_id, organization_id, service_id, scope, remember, issued_at, expire_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (identity_id, id) DO UPDATE SET
				scope = EXCLUDED.scope,
				remember = EXCLUDED.remember,
				expire_at = EXCLUDED.expire_at
		`,
			string(grant.ID),
			string(grant.Subjects.IdentityID),
			string(grant.Subjects.ClientID.OrganizationID),
			string(grant.Subjects.ClientID.ServiceID),
			grant.Scope,
			grant.Remember,
			grant.IssuedAt,
			grant.ExpireAt,
		)
		return err
	})
	if err != nil {
		return model.Grant{}, errors.MapDBError(err)
	}
	return grant, nil
}

// Remove deletes a grant record. Removing an absent grant is not an error.
func (r *GrantRepo) Remove(ctx context.Context, identityID model.IdentityID, id model.GrantID) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			DELETE FROM grants WHERE identity_id = $1 AND id = $2
		`, string(identityID), string(id))
		return err
	})
	return errors.MapDBError(err)
}
