package document

import "math"

// Paging holds the defaults applied to absent pagination parameters.
type Paging struct {
	DefaultPageSize int
	DefaultPage     int
	MaxPageSize     int
}

// DefaultPaging mirrors the service's built-in defaults.
var DefaultPaging = Paging{DefaultPageSize: 10, DefaultPage: 0, MaxPageSize: 100}

// Page is the caller-supplied pagination. Zero or negative values are
// treated as absent.
type Page struct {
	PageSize    int `form:"pageSize" json:"pageSize"`
	CurrentPage int `form:"currentPage" json:"currentPage"`
}

// Normalize fills absent values from p and clamps the page size.
func (pg Page) Normalize(p Paging) Page {
	if pg.PageSize <= 0 {
		pg.PageSize = p.DefaultPageSize
	}
	if p.MaxPageSize > 0 && pg.PageSize > p.MaxPageSize {
		pg.PageSize = p.MaxPageSize
	}
	if pg.CurrentPage <= 0 {
		pg.CurrentPage = p.DefaultPage
	}
	return pg
}

// Skip saturates at math.MaxInt64 so a huge page number selects past the end
// instead of wrapping around to a negative offset.
func (pg Page) Skip() int64 {
	size, page := int64(pg.PageSize), int64(pg.CurrentPage)
	if size <= 0 || page <= 0 {
		return 0
	}
	if page > math.MaxInt64/size {
		return math.MaxInt64
	}
	return size * page
}

func (pg Page) Limit() int64 { return int64(pg.PageSize) }
