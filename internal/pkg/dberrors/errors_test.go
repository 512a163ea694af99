package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	dup := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514"}

	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsDuplicateConstraintError(dup, "users_email_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "syllabi_course_id_key"))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsCheckViolation(check))

	plain := errors.New("connection reset")
	assert.False(t, IsUniqueViolation(plain))
	assert.False(t, IsForeignKeyViolation(nil))
}
