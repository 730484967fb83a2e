package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := PaginationParams{Page: 0, Limit: -1}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Limit)

	p = PaginationParams{Page: 2, Limit: 20}.Normalize()
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.Limit)

	p = PaginationParams{Page: 1, Limit: 1000}.Normalize()
	assert.Equal(t, MaxPageLimit, p.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, PaginationParams{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, PaginationParams{Page: 3, Limit: 0}.Offset())
}

func TestCalculateMeta(t *testing.T) {
	meta := CalculateMeta(101, PaginationParams{Page: 2, Limit: 20})
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 101, meta.TotalCount)
	assert.Equal(t, 6, meta.TotalPages)

	meta = CalculateMeta(7, PaginationParams{Page: 1, Limit: 0})
	assert.Equal(t, 1, meta.TotalPages)
	assert.Equal(t, 7, meta.Limit)

	meta = CalculateMeta(0, PaginationParams{Page: 1, Limit: 10})
	assert.Equal(t, 0, meta.TotalPages)
}
