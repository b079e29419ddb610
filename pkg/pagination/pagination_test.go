package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, defaultPerPage, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 10000}
	p.Validate()
	assert.Equal(t, maxPerPage, p.PerPage)
	assert.Equal(t, 2*maxPerPage, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 50, 120)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = NewPagination(1, 50, 0)
	assert.Equal(t, 0, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrev)
}
