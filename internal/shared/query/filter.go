// Package query provides pagination primitives for list operations.
package query

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageFilter describes a page window for list queries.
// The zero value yields the first page with the default size.
type PageFilter struct {
	Page     int
	PageSize int
}

func NewPageFilter(page, pageSize int) PageFilter {
	return PageFilter{Page: page, PageSize: pageSize}
}

func (f PageFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return defaultPageSize
	}
	if f.PageSize > maxPageSize {
		return maxPageSize
	}
	return f.PageSize
}
