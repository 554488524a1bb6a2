package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store-agnostic failures. Both drivers return these so services and the
// response mapper never look at driver errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
)

// pgCodes lists the constraint violations the schema can raise on a valid request:
// the per-owner pet name index, and references to owners, pets or types that are gone.
var pgCodes = map[string]error{
	pgerrcode.UniqueViolation:     ErrAlreadyExists,
	pgerrcode.ForeignKeyViolation: ErrConflict,
	pgerrcode.RestrictViolation:   ErrConflict,
	pgerrcode.CheckViolation:      ErrConflict,
}

// MapPgError rewrites a pgx error into one of the sentinels above, keeping the
// violated constraint in the message. Anything else is returned untouched.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	sentinel, ok := pgCodes[pgErr.Code]
	if !ok {
		return err
	}
	if pgErr.ConstraintName == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, pgErr.ConstraintName)
}
