//go:build !integration

package postgres

import (
	"testing"

	"styleMarket/domain"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		sortBy, sortOrder string
		want              string
	}{
		{domain.SortByPrice, "asc", "price ASC, id ASC"},
		{domain.SortByPrice, "desc", "price DESC, id ASC"},
		{domain.SortByName, "asc", "name ASC, id ASC"},
		{domain.SortByNewest, "desc", "COALESCE(created_at, '1970-01-01'::timestamptz) DESC, id DESC"},
		{domain.SortByBestseller, "desc", "is_bestseller DESC, name ASC"},
		{"", "", "id ASC"},
		{"price; DROP TABLE products", "desc", "id ASC"},
	}

	for _, tt := range tests {
		if got := orderClause(tt.sortBy, tt.sortOrder); got != tt.want {
			t.Errorf("orderClause(%q, %q) = %q, want %q", tt.sortBy, tt.sortOrder, got, tt.want)
		}
	}
}
