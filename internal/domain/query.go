package domain

// PageSize is the fixed number of rows per listing page.
const PageSize = 10

// Order is the sort direction of a listing.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder maps a raw query value to a sort direction. Anything that is
// not exactly "desc" sorts ascending.
func ParseOrder(s string) Order {
	if s == string(OrderDesc) {
		return OrderDesc
	}
	return OrderAsc
}

// ListQuery holds the user-controlled parameters of one listing fetch.
// Scope filters (portfolio, member) narrow the dataset; search and status
// filter within that scope.
type ListQuery struct {
	Page        int
	SortBy      string
	Order       Order
	SearchTerm  string
	Status      string
	PortfolioID string
	MemberID    string
}

// Page is one page of listing results plus the pagination metadata the
// table loader renders.
type Page[T any] struct {
	Items           []T
	Page            int
	TotalPages      int
	HasPrevious     bool
	HasNext         bool
	Total           int // rows matching all filters
	UnfilteredTotal int // rows in scope, ignoring search and status filters
}

// TotalPages computes the page count for a filtered total. An empty result
// set still has one (empty) page.
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// ClampPage folds an out-of-range page number back into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// NewPage assembles a page result from a slice of items and the two counts.
// The page argument must already be clamped.
func NewPage[T any](items []T, page, total, unfilteredTotal int) Page[T] {
	totalPages := TotalPages(total)
	return Page[T]{
		Items:           items,
		Page:            page,
		TotalPages:      totalPages,
		HasPrevious:     page > 1,
		HasNext:         page < totalPages,
		Total:           total,
		UnfilteredTotal: unfilteredTotal,
	}
}
