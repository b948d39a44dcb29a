package models

// Page is the pagination envelope returned by every listing. HasMore is
// a heuristic: it is true whenever the page came back full, so callers
// must read it as "there may be more", never as an exact boundary.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// NewPage wraps items in a pagination envelope, deriving HasMore from
// the returned item count.
func NewPage[T any](items []T, limit, offset int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Limit:   limit,
		Offset:  offset,
		HasMore: len(items) == limit,
	}
}
