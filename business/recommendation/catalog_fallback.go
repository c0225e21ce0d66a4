package recommendation

import (
	"cmp"
	"slices"

	"styleMarket/domain"
)

// SimilarByCatalog picks products that share the target's category and gender
// (each only when the target has one). Ordering is bestseller first, newest
// next, then id descending. Scores are nil: catalog neighbours carry no
// numeric similarity.
func SimilarByCatalog(target domain.Product, products []domain.Product, limit int) []domain.Candidate {
	category := target.Category()
	gender := target.GenderName()

	pool := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID == target.ID {
			continue
		}
		if category != "" && p.Category() != category {
			continue
		}
		if gender != "" && p.GenderName() != gender {
			continue
		}
		pool = append(pool, p)
	}

	slices.SortStableFunc(pool, func(a, b domain.Product) int {
		if c := compareBestseller(a, b); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	out := make([]domain.Candidate, 0, len(pool))
	for _, p := range pool {
		out = append(out, domain.Candidate{Product: p})
	}
	return truncate(out, limit)
}
