package search

// Page is one slice of an ordered result collection plus the metadata a
// client needs to fetch the rest.
type Page[T any] struct {
	Items      []T
	PageNumber int
	PageSize   int
	Total      int
	HasMore    bool
}

// Paginate returns the contiguous sub-sequence of items for the requested
// 1-indexed page, clipped to the collection bounds. Page numbers below 1
// are treated as 1, and an offset past the end yields an empty page rather
// than an error. The input is never mutated or reordered.
func Paginate[T any](items []T, pageNumber, pageSize int) Page[T] {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(items)
	offset := (pageNumber - 1) * pageSize

	page := Page[T]{
		Items:      []T{},
		PageNumber: pageNumber,
		PageSize:   pageSize,
		Total:      total,
		HasMore:    offset+pageSize < total,
	}
	if offset >= total {
		return page
	}

	end := offset + pageSize
	if end > total {
		end = total
	}
	page.Items = items[offset:end]
	return page
}
