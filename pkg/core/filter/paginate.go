package filter

// DefaultPageSize matches the referral-matching view's client-side paginator.
const DefaultPageSize = 100

// Paginator slices a list into fixed-size pages. Pages are 1-based.
type Paginator struct {
	PerPage int
	Total   int
}

// NewPaginator returns a paginator over total items with the default page
// size when perPage is not positive.
func NewPaginator(total, perPage int) Paginator {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	return Paginator{PerPage: perPage, Total: total}
}

// Pages is the number of pages, at least 1.
func (p Paginator) Pages() int {
	if p.Total == 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// Bounds returns the [start, end) index range for the given page, clamped
// to the valid range.
func (p Paginator) Bounds(page int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > p.Pages() {
		page = p.Pages()
	}
	start := (page - 1) * p.PerPage
	end := start + p.PerPage
	if start > p.Total {
		start = p.Total
	}
	if end > p.Total {
		end = p.Total
	}
	return start, end
}
