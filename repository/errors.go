package repository

import (
	"errors"
	"strings"
)

// Sentinel errors for cross-layer signaling. Handlers translate these into
// HTTP statuses.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// isUniqueViolation sniffs driver errors for unique-constraint failures so a
// racing insert surfaces as ErrConflict instead of a 500.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "SQLSTATE 23505")
}
