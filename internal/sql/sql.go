/*
Package sql implements the read models consulted by the authorizers using
the postgres database.
*/
package sql

import (
	"database/sql"

	"github.com/covercore/covercore/internal"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

// Error converts a database error into an error understood by the rest of
// the application.
func Error(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return internal.ErrResourceNotFound
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case "23503": // foreign key violation
			return &internal.ForeignKeyError{Detail: pgErr.Detail}
		case "23505": // unique violation
			return internal.ErrResourceAlreadyExists
		}
		fallthrough
	default:
		return err
	}
}

// UUIDPtr converts a nullable uuid scanned from the database into a pointer.
func UUIDPtr(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	return &id.UUID
}
