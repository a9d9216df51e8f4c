package data

// Package data provides PostgreSQL-backed implementations of the client and
// grant contracts. Interactions and sessions live in Redis; clients and
// grants are the durable entities.

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/civicid/oidc-provider/internal/data/pgxutil"
	"github.com/civicid/oidc-provider/internal/domain/model"
	"github.com/civicid/oidc-provider/internal/errors"
	"github.com/civicid/oidc-provider/internal/ports"
)

var _ ports.ClientService = (*ClientRepo)(nil)

// ClientRepo provides database operations for registered clients.
type ClientRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewClientRepo creates a ClientRepo with the real clock.
func NewClientRepo(db *sql.DB) *ClientRepo {
	return &ClientRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewClientRepoWithTimeProvider creates a ClientRepo with a custom clock (useful for tests).
func NewClientRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ClientRepo {
	return &ClientRepo{DB: db, timeProvider: tp}
}

const clientColumns = `organization_id, service_id, name, grant_types, redirect_uris, response_types, scope, issued_at`

func scanClient(row pgx.Row) (model.Client, error) {
	var (
		c        model.Client
		org, svc string
		issuedAt time.Time
	)
	if err := row.Scan(&org, &svc, &c.Name, &c.GrantTypes, &c.RedirectURIs, &c.ResponseTypes, &c.Scope, &issuedAt); err != nil {
		return model.Client{}, err
	}
	c.ID = model.ClientID{OrganizationID: model.OrganizationID(org), ServiceID: model.ServiceID(svc)}
	c.IssuedAt = issuedAt
	return c, nil
}

// Find returns the client with the given composite id, or nil when absent.
func (r *ClientRepo) Find(ctx context.Context, id model.ClientID) (*model.Client, error) {
	var out *model.Client
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		row := conn.QueryRow(ctx, `
			SELECT `+clientColumns+`
			FROM clients
			WHERE organization_id = $1 AND service_id = $2
		`, string(id.OrganizationID), string(id.ServiceID))
		c, err := scanClient(row)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil
			}
			return err
		}
		out = &c
		return nil
	})
	if err != nil {
		return nil, errors.MapDBError(err)
	}
	return out, nil
}

// List returns clients matching the selector, ordered by composite id.
func (r *ClientRepo) List(ctx context.Context, sel ports.ClientSelector) ([]model.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE ($1::text IS NULL OR organization_id = $1)
		  AND ($2::text IS NULL OR service_id = $2)
		ORDER BY organization_id, service_id`

	var org, svc *string
	if sel.OrganizationID != nil {
		s := string(*sel.OrganizationID)
		org = &s
	}
	if sel.ServiceID != nil {
		s := string(*sel.ServiceID)
		svc = &s
	}

	var out []model.Client
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, org, svc)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			c, err := scanClient(rows)
			if err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, errors.MapDBError(err)
	}
	return out, nil
}

// Upsert inserts or replaces a client record.
func (r *ClientRepo) Upsert(ctx context.Context, client model.Client) (model.Client, error) {
	if err := client.Validate(); err != nil {
		return model.Client{}, err
	}
	issuedAt := client.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = r.timeProvider.Now().UTC()
	}

	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO clients (
				organization_id, service_id, name, grant_types, redirect_uris, response_types, scope, issued_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (organization_id, service_id) DO UPDATE SET
				name = EXCLUDED.name,
				grant_types = EXCLUDED.grant_types,
				redirect_uris = EXCLUDED.redirect_uris,
				response_types = EXCLUDED.response_types,
				scope = EXCLUDED.scope,
				updated_at = now()
		`,
			string(client.ID.OrganizationID),
			string(client.ID.ServiceID),
			client.Name,
			client.GrantTypes,
			client.RedirectURIs,
			client.ResponseTypes,
			client.Scope,
			issuedAt,
		)
		return err
	})
	if err != nil {
		return model.Client{}, errors.MapDBError(err)
	}
	client.IssuedAt = issuedAt
	return client, nil
}

// Remove deletes a client record. Removing an absent client is not an error.
func (r *ClientRepo) Remove(ctx context.Context, id model.ClientID) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			DELETE FROM clients WHERE organization_id = $1 AND service_id = $2
		`, string(id.OrganizationID), string(id.ServiceID))
		return err
	})
	return errors.MapDBError(err)
}
