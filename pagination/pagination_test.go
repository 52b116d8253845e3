package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginateLastPartialPage(t *testing.T) {
	p := Paginate(seq(12), 3, 5)

	assert.Equal(t, []int{11, 12}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 3, p.Page)
	assert.True(t, p.HasPrev)
	assert.False(t, p.HasNext)
	assert.Equal(t, 11, p.Start)
	assert.Equal(t, 12, p.End)
	assert.Equal(t, 2, p.Prev())
	assert.Equal(t, 3, p.Next())
}

func TestPaginateFirstPage(t *testing.T) {
	p := Paginate(seq(12), 1, 5)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, p.Items)
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)
	assert.Equal(t, 1, p.Prev())
	assert.Equal(t, 2, p.Next())
}

func TestPaginateClampsPage(t *testing.T) {
	assert.Equal(t, 3, Paginate(seq(12), 99, 5).Page)
	assert.Equal(t, 1, Paginate(seq(12), 0, 5).Page)
	assert.Equal(t, 1, Paginate(seq(12), -4, 5).Page)
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]string(nil), 2, 5)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 1, p.Page)
	assert.Zero(t, p.Start)
	assert.Zero(t, p.End)
	assert.False(t, p.HasNext)
}

func TestPaginateDefaultSize(t *testing.T) {
	p := Paginate(seq(7), 1, 0)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Len(t, p.Items, DefaultPageSize)
}
