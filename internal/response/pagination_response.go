package response

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination normalizes page/pageSize and describes the window over total
// items. From and To are 1-based and inclusive; both are 0 for an empty window.
func NewPagination(page, pageSize, total int) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}

	totalPages := (total + pageSize - 1) / pageSize
	p := Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int64(totalPages),
		TotalItems: int64(total),
		HasMore:    page < totalPages,
	}

	// page-1 < totalPages keeps the multiplication below total+pageSize.
	if page-1 < totalPages {
		start := (page - 1) * pageSize
		p.From = start + 1
		p.To = min(start+pageSize, total)
	}
	return p
}

// Bounds returns the half-open slice window [lo, hi) for the page.
func (p Pagination) Bounds() (lo, hi int) {
	if p.From == 0 {
		return 0, 0
	}
	return p.From - 1, p.To
}
