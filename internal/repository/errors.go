package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateName = errors.New("name already exists")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
