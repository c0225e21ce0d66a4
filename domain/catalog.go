package domain

const (
	SortByPrice      = "price"
	SortByName       = "name"
	SortByNewest     = "newest"
	SortByBestseller = "bestseller"

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ProductFilter narrows and orders a catalog listing. Empty fields do not
// filter.
type ProductFilter struct {
	Gender     string
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// Offset is the number of rows skipped before the requested page.
func (f ProductFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

type ProductPage struct {
	Items      []ProductView `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	Total      int64         `json:"total"`
	TotalPages int64         `json:"totalPages"`
}
