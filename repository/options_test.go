package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	o := ListOptions{}
	o.normalize()
	assert.Equal(t, 1, o.Page)
	assert.Equal(t, 10, o.Limit)
}

func TestNormalizeBounds(t *testing.T) {
	o := ListOptions{Page: -3, Limit: 0}
	o.normalize()
	assert.Equal(t, 1, o.Page)
	assert.Equal(t, 10, o.Limit)

	o = ListOptions{Page: 2, Limit: 500}
	o.normalize()
	assert.Equal(t, 2, o.Page)
	assert.Equal(t, 100, o.Limit, "limit is capped at 100")
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(1, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 3, totalPages(12, 5))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(errString(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`)))
	assert.False(t, isUniqueViolation(errString("connection refused")))
}

type errString string

func (e errString) Error() string { return string(e) }
