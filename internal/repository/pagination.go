package repository

import "math"

// Page represents a simple limit/offset window for listing operations.
// I keep it intentionally small; advanced filtering belongs to higher layers.
type Page struct {
	Limit  int
	Offset int
}

// PageNumber converts a 1-based page number into a limit/offset window.
// Numbers below 1 are clamped to the first page; numbers whose offset would not fit
// in an int saturate to math.MaxInt, which is past the end of any listing.
func PageNumber(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 1
	}
	if number-1 > math.MaxInt/size {
		return Page{Limit: size, Offset: math.MaxInt}
	}
	return Page{Limit: size, Offset: (number - 1) * size}
}

// Number is the 1-based page number this window starts at.
func (p Page) Number() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

// PageResult carries a slice of items and the total count matching the query.
// I return the total so clients can compute pagination without an extra round trip.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  `json:"-"`
}

// TotalPages is ceil(Total / Limit); zero when nothing matched.
func (r PageResult[T]) TotalPages() int {
	if r.Limit <= 0 || r.Total <= 0 {
		return 0
	}
	return (r.Total + r.Limit - 1) / r.Limit
}

// Slice pages an already materialized list. A window past the end yields no items
// but still reports the full total.
func Slice[T any](all []T, p Page) PageResult[T] {
	res := PageResult[T]{Items: []T{}, Total: len(all), Page: p}
	start := p.Offset
	if start < 0 {
		start = 0
	}
	if start >= len(all) {
		return res
	}
	end := start + p.Limit
	if p.Limit <= 0 || end > len(all) {
		end = len(all)
	}
	res.Items = append(res.Items, all[start:end]...)
	return res
}
