// Package page slices record sets into numbered pages.
package page

import "github.com/kailas-cloud/recordq/internal/domain/record"

// Request asks for one page of a result set.
type Request struct {
	Page    int
	PerPage int
}

// Result describes the page that was served.
type Result struct {
	TotalRecords int  `json:"total_records"`
	TotalPages   int  `json:"total_pages"`
	CurrentPage  int  `json:"current_page"`
	PerPage      int  `json:"per_page"`
	HasNext      bool `json:"has_next"`
	HasPrev      bool `json:"has_prev"`
}

// Paginate returns the requested page and its metadata. The page number is
// clamped into [1, total pages]; a per-page size below 1 is treated as 1.
func Paginate(records []record.Record, req Request) ([]record.Record, Result) {
	perPage := max(req.PerPage, 1)

	total := len(records)
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}

	current := 1
	if totalPages > 0 {
		current = min(max(req.Page, 1), totalPages)
	}

	start := min((current-1)*perPage, total)
	end := start + min(perPage, total-start)

	out := make([]record.Record, end-start)
	copy(out, records[start:end])

	return out, Result{
		TotalRecords: total,
		TotalPages:   totalPages,
		CurrentPage:  current,
		PerPage:      perPage,
		HasNext:      current < totalPages,
		HasPrev:      current > 1,
	}
}
