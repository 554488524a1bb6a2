package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name string
		in   error
		want error
		msg  string
	}{
		{"nil", nil, nil, ""},
		{"no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrNotFound, "not found"},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "pets_owner_name_key"}, ErrAlreadyExists, "already exists: pets_owner_name_key"},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "pets_type_id_fkey"}, ErrConflict, "conflict: pets_type_id_fkey"},
		{"check_unnamed", &pgconn.PgError{Code: pgerrcode.CheckViolation}, ErrConflict, "conflict"},
		{"other_code", &pgconn.PgError{Code: pgerrcode.SyntaxError}, nil, ""},
		{"plain", boom, boom, "boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapPgError(tc.in)
			switch {
			case tc.in == nil:
				assert.NoError(t, got)
			case tc.want == nil:
				assert.Same(t, tc.in, got)
			default:
				assert.ErrorIs(t, got, tc.want)
				assert.EqualError(t, got, tc.msg)
			}
		})
	}
}
