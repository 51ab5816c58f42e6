package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	maxSearchLen = 100
)

// Params carries the page-based listing inputs shared by every listing endpoint.
type Params struct {
	Page   int
	Limit  int
	Search string
}

// Paginated is the metadata block of a paginated response. Back and Next are
// omitted (nil) on the first and last page respectively.
type Paginated struct {
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
	Back       *int  `json:"back,omitempty"`
	Next       *int  `json:"next,omitempty"`
}

// Response is the {items, pagination} envelope returned by listing endpoints.
type Response[T any] struct {
	Items      []T       `json:"items"`
	Pagination Paginated `json:"pagination"`
}

// FromQuery parses page/limit/search query values, clamping out-of-range
// inputs to the defaults: page >= 1, limit in 1..100, search <= 100 chars.
func FromQuery(values url.Values) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if pageStr := values.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page >= 1 {
			p.Page = page
		}
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 1 && limit <= MaxLimit {
			p.Limit = limit
		}
	}

	if search := values.Get("search"); search != "" && len(search) <= maxSearchLen {
		p.Search = search
	}

	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewResponse assembles the envelope for one page of items.
// total_pages = ceil(total/limit); back = page-1 when page > 1;
// next = page+1 while page*limit < total.
func NewResponse[T any](items []T, total int64, p Params) Response[T] {
	meta := Paginated{
		TotalItems: total,
		TotalPages: (total + int64(p.Limit) - 1) / int64(p.Limit),
	}

	if p.Page > 1 {
		back := p.Page - 1
		meta.Back = &back
	}
	if int64(p.Page)*int64(p.Limit) < total {
		next := p.Page + 1
		meta.Next = &next
	}

	if items == nil {
		items = []T{}
	}

	return Response[T]{Items: items, Pagination: meta}
}
