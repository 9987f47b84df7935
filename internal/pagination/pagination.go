// Package pagination slices ordered listings into fixed-size pages.
package pagination

import "strconv"

// PageSize is the fixed number of items per listing page.
const PageSize = 10

// Page describes one page of an ordered result set. Numbers are 1-based.
type Page struct {
	Number     int   `json:"number"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// Paginate clamps the requested page number against the total item count.
// An out-of-range request lands on the nearest valid page instead of failing;
// an empty result set still yields page 1 of 1.
func Paginate(totalItems int64, requested int) Page {
	totalPages := int((totalItems + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	number := requested
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}
	return Page{
		Number:     number,
		Size:       PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Offset returns the query offset for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the query limit for this page.
func (p Page) Limit() int {
	return p.Size
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// ParsePage reads a page number from a raw query value. Missing or
// non-numeric input defaults to page 1; clamping against the total happens
// later in Paginate.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
