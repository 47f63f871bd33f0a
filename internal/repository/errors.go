package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes mapped onto domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	invalidDatetime     = "22007"
	datetimeOverflow    = "22008"
)

// pqCode returns the SQLSTATE of a lib/pq error, or "" for anything else.
func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
