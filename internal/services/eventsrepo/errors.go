package eventsrepo

import (
	"errors"

	"github.com/lib/pq"
)

const (
	// ValidationError is returned when a row is rejected before reaching the database.
	ValidationError = constError("invalid request")

	// DuplicateKeyError is the postgres code for a unique violation.
	DuplicateKeyError = pq.ErrorCode("23505")
	// ForeignKeyViolation is the postgres code for a missing referenced row.
	ForeignKeyViolation = pq.ErrorCode("23503")
	// CheckViolation is the postgres code for a failed CHECK constraint.
	CheckViolation = pq.ErrorCode("23514")
)

// IsForeignKeyError checks if the error is a foreign key violation.
func IsForeignKeyError(err error) bool {
	return hasCode(err, ForeignKeyViolation)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

type constError string

func (e constError) Error() string {
	return string(e)
}
