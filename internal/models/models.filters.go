package models

// PageSizes are the page sizes offered by the monitoring table.
var PageSizes = []int{10, 20, 30, 40, 50}

// ListQuery is the search and pagination state of a table view.
type ListQuery struct {
	Search   string `json:"search" schema:"q"`
	Page     int    `json:"page" schema:"page"`
	PageSize int    `json:"page_size" schema:"size"`
}

// Normalize clamps the page to >= 1 and the page size to one of PageSizes.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	valid := false
	for _, s := range PageSizes {
		if q.PageSize == s {
			valid = true
			break
		}
	}
	if !valid {
		q.PageSize = PageSizes[0]
	}
	return q
}

// Page is one page of a filtered listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// HasPrevious reports whether a previous page exists.
func (p Page[T]) HasPrevious() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// Paginate slices items according to q. Pages past the end are clamped to the last page.
func Paginate[T any](items []T, q ListQuery) Page[T] {
	q = q.Normalize()
	total := len(items)
	pages := (total + q.PageSize - 1) / q.PageSize
	if pages == 0 {
		pages = 1
	}
	if q.Page > pages {
		q.Page = pages
	}
	start := (q.Page - 1) * q.PageSize
	end := start + q.PageSize
	if end > total {
		end = total
	}
	return Page[T]{
		Items:      items[start:end],
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}
