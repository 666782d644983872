// Package pagination provides the page/limit scheme used by list endpoints
// and reports. Summaries are always computed over the full filtered set, so
// only row retrieval is windowed.
package pagination

// Params is a normalized page request.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize clamps the params to sane values, applying the given default
// limit when none was supplied. Limits are capped at 100 rows per page.
func (p Params) Normalize(defaultLimit int) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Result describes the window that was returned alongside the total count.
type Result struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// NewResult computes the page count for a total row count.
func NewResult(total int, p Params) Result {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return Result{Total: total, Page: p.Page, Pages: pages}
}
