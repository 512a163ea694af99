// Package dberrors classifies PostgreSQL driver errors.
package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := errors.As(err, &pgErr)
	return pgErr, ok
}

// IsDuplicateConstraintError reports a unique violation on the named constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsUniqueViolation reports any unique violation.
func IsUniqueViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeUniqueViolation
}

// IsForeignKeyViolation reports a reference to a missing parent row.
func IsForeignKeyViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeForeignKeyViolation
}

// IsCheckViolation reports a failed CHECK constraint.
func IsCheckViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeCheckViolation
}
