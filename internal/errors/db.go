package errors

import (
	"context"
	"errors"
	"regexp"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// reKeyField extracts the field name from a unique violation detail:
// "Key (field)=(value) already exists.".
var reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)

// MapDBError maps database errors to DomainError instances so repositories
// surface only the closed kind set. It handles:
// - pgx.ErrNoRows → NotFound
// - constraint violations (unique, foreign key, check, not-null) → Format
// - context timeouts/cancellations and everything else → Generic
//
// A *DomainError passes through unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	var derr *DomainError
	if errors.As(err, &derr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Wrap(err, KindGeneric, "database request interrupted")
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return Wrap(err, KindNotFound, "resource not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	return Wrap(err, KindGeneric, "database error")
}

// mapPgError maps PostgreSQL-specific errors to DomainError instances.
func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if m := reKeyField.FindStringSubmatch(pgErr.Detail); m != nil {
			return Wrapf(pgErr, KindFormat, "duplicate value for %s", m[1])
		}
		return Wrap(pgErr, KindFormat, "duplicate value")
	case pgerrcode.ForeignKeyViolation, pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return Wrap(pgErr, KindFormat, "constraint violation")
	default:
		return Wrap(pgErr, KindGeneric, "database error")
	}
}
