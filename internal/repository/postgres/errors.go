package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cbummouad/ticket-backend/internal/repository"
)

// mapPgError converts Postgres constraint violations into the
// repository's sentinel errors; anything else passes through.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return repository.ErrDuplicate
		case "23503": // foreign_key_violation
			return repository.ErrForeignKey
		}
	}
	return err
}
