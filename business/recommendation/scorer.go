package recommendation

import (
	"cmp"
	"math"
	"slices"

	"styleMarket/domain"
)

// CosineSimilarity = a·b / (‖a‖·‖b‖); 0 when either magnitude is 0 or the
// vectors have different lengths.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank orders products against a preference profile and keeps the first
// limit entries.
//
// A profile whose vector is all zeros carries no opinion; cosine similarity is
// meaningless against it, so the pool is ordered bestseller-first and then by
// id, and the candidates carry no score.
func Rank(profile domain.PreferenceProfile, products []domain.Product, limit int) ([]domain.Candidate, error) {
	if len(products) == 0 {
		return []domain.Candidate{}, nil
	}

	space := BuildFeatureSpace(products)
	if err := space.Validate(); err != nil {
		return nil, err
	}

	pref := ProfileVector(profile, space)
	pool := candidatePool(products, profile.PriceRange)

	var ranked []domain.Candidate
	if magnitude(pref) == 0 {
		ranked = bestsellerOrder(pool)
	} else {
		ranked = scoreBySimilarity(pref, pool, space)
	}

	return truncate(ranked, limit), nil
}

// candidatePool narrows products to the price range. An empty narrowing is
// discarded: an over-tight range must not empty a non-empty catalog.
func candidatePool(products []domain.Product, priceRange *domain.PriceRange) []domain.Product {
	if priceRange == nil {
		return slices.Clone(products)
	}

	pool := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if priceRange.Contains(p.NumericPrice()) {
			pool = append(pool, p)
		}
	}

	if len(pool) == 0 {
		return slices.Clone(products)
	}
	return pool
}

func bestsellerOrder(pool []domain.Product) []domain.Candidate {
	slices.SortStableFunc(pool, func(a, b domain.Product) int {
		if c := compareBestseller(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	out := make([]domain.Candidate, 0, len(pool))
	for _, p := range pool {
		out = append(out, domain.Candidate{Product: p})
	}
	return out
}

func scoreBySimilarity(pref []float64, pool []domain.Product, space FeatureSpace) []domain.Candidate {
	type scored struct {
		product domain.Product
		score   float64
	}

	list := make([]scored, 0, len(pool))
	for _, p := range pool {
		list = append(list, scored{
			product: p,
			score:   CosineSimilarity(pref, ProductVector(p, space)),
		})
	}

	slices.SortStableFunc(list, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := compareBestseller(a.product, b.product); c != 0 {
			return c
		}
		return cmp.Compare(a.product.ID, b.product.ID)
	})

	out := make([]domain.Candidate, 0, len(list))
	for _, s := range list {
		score := s.score
		out = append(out, domain.Candidate{Product: s.product, Score: &score})
	}
	return out
}

// compareBestseller sorts bestsellers first.
func compareBestseller(a, b domain.Product) int {
	switch {
	case a.IsBestseller == b.IsBestseller:
		return 0
	case a.IsBestseller:
		return -1
	default:
		return 1
	}
}

func truncate(candidates []domain.Candidate, limit int) []domain.Candidate {
	if limit >= 0 && len(candidates) > limit {
		return candidates[:limit]
	}
	return candidates
}
