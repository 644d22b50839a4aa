package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/maxviazov/product-catalog-service/internal/repository"
)

// mapWriteError translates constraint violations to domain errors.
// Server-side errors I don't handle explicitly pass through; anything that never
// reached the server counts as an outage.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return repository.ErrAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return repository.ErrConflict
		}
		return err
	}
	return repository.Unavailable(err)
}

// mapReadError marks a failed read as a store outage; the driver error stays wrapped for logs.
func mapReadError(err error) error {
	if err == nil {
		return nil
	}
	return repository.Unavailable(err)
}
