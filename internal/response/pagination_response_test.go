package response

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, int64(25), p.TotalItems)
	assert.True(t, p.HasMore)
	assert.Equal(t, 11, p.From)
	assert.Equal(t, 20, p.To)

	lo, hi := p.Bounds()
	assert.Equal(t, 10, lo)
	assert.Equal(t, 20, hi)
}

func TestNewPaginationLastPartialPage(t *testing.T) {
	p := NewPagination(3, 10, 25)
	assert.False(t, p.HasMore)
	assert.Equal(t, 21, p.From)
	assert.Equal(t, 25, p.To)
}

func TestNewPaginationDefaultsAndOutOfRange(t *testing.T) {
	p := NewPagination(0, 0, 5)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 1, p.From)
	assert.Equal(t, 5, p.To)

	p = NewPagination(4, 500, 5)
	assert.Equal(t, MaxPageSize, p.PageSize)
	assert.Equal(t, 0, p.From)
	lo, hi := p.Bounds()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)

	empty := NewPagination(1, 20, 0)
	assert.Equal(t, int64(0), empty.TotalPages)
	assert.False(t, empty.HasMore)
}

func TestNewPaginationHugePage(t *testing.T) {
	p := NewPagination(math.MaxInt, MaxPageSize, 1)
	assert.Equal(t, math.MaxInt, p.Page)
	assert.Equal(t, 0, p.From)
	assert.Equal(t, 0, p.To)
	assert.False(t, p.HasMore)

	lo, hi := p.Bounds()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)
}
