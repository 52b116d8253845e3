// Package pagination slices in-memory result sets into fixed-size pages.
package pagination

const DefaultPageSize = 5

// Page is one slice of a larger result set. Start and End are 1-based and
// inclusive, ready for "showing Start - End of Total".
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	Total      int  `json:"total"`
	Start      int  `json:"start"`
	End        int  `json:"end"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// Paginate returns page number page (1-based) of items. Out-of-range pages
// are clamped to the nearest valid page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + size - 1) / size
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	p := Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		Total:      total,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	if total > 0 {
		p.Start = start + 1
		p.End = end
	}
	return p
}

// Prev and Next are the neighbouring page numbers, clamped.
func (p Page[T]) Prev() int {
	if p.HasPrev {
		return p.Page - 1
	}
	return p.Page
}

func (p Page[T]) Next() int {
	if p.HasNext {
		return p.Page + 1
	}
	return p.Page
}
