package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ConflictError describes a unique or foreign-key constraint violation in
// terms a client can act on. Transport maps it to a 400 response.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// constraintError translates a postgres constraint violation into a
// ConflictError with a human-readable message. The messages map is keyed by
// constraint name; unmatched violations get a generic message. Returns nil
// when err is not a constraint violation.
func constraintError(err error, messages map[string]string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgUniqueViolation, pgForeignKeyViolation:
		if msg, ok := messages[pgErr.ConstraintName]; ok {
			return &ConflictError{Message: msg}
		}
		if pgErr.Code == pgUniqueViolation {
			return &ConflictError{Message: "a record with the same unique value already exists"}
		}
		return &ConflictError{Message: "operation conflicts with related records"}
	}

	return nil
}
