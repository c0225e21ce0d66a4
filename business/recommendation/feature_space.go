package recommendation

import (
	"fmt"

	"styleMarket/domain"
)

// FeatureSpace is the per-request coordinate system derived from a product
// set: one dimension per distinct category, one per distinct brand, and a
// trailing price dimension.
//
// Dimensions are assigned in the order values are first seen, so two spaces
// built from the same products in a different order are not comparable.
type FeatureSpace struct {
	CategoryIndex map[string]int
	BrandIndex    map[string]int // relative to the start of the brand block
	PriceIndex    int
	Size          int
	PriceMax      float64
}

func BuildFeatureSpace(products []domain.Product) FeatureSpace {
	categoryIndex := make(map[string]int)
	brandIndex := make(map[string]int)
	priceMax := 0.0

	for _, p := range products {
		if c := p.Category(); c != "" {
			if _, ok := categoryIndex[c]; !ok {
				categoryIndex[c] = len(categoryIndex)
			}
		}
		if b := p.BrandName(); b != "" {
			if _, ok := brandIndex[b]; !ok {
				brandIndex[b] = len(brandIndex)
			}
		}
		if price := p.NumericPrice(); price > priceMax {
			priceMax = price
		}
	}

	priceIndex := len(categoryIndex) + len(brandIndex)

	return FeatureSpace{
		CategoryIndex: categoryIndex,
		BrandIndex:    brandIndex,
		PriceIndex:    priceIndex,
		Size:          priceIndex + 1,
		PriceMax:      priceMax,
	}
}

func (s FeatureSpace) categoryDim(category string) (int, bool) {
	if category == "" {
		return 0, false
	}
	idx, ok := s.CategoryIndex[category]
	return idx, ok
}

func (s FeatureSpace) brandDim(brand string) (int, bool) {
	if brand == "" {
		return 0, false
	}
	idx, ok := s.BrandIndex[brand]
	if !ok {
		return 0, false
	}
	return len(s.CategoryIndex) + idx, true
}

// Validate reports a space whose bookkeeping is inconsistent. A space made by
// BuildFeatureSpace is always valid; failure here is a programming defect.
func (s FeatureSpace) Validate() error {
	blocks := len(s.CategoryIndex) + len(s.BrandIndex)
	if s.PriceIndex != blocks || s.Size != blocks+1 {
		return fmt.Errorf("malformed feature space: size=%d price_index=%d categories=%d brands=%d",
			s.Size, s.PriceIndex, len(s.CategoryIndex), len(s.BrandIndex))
	}
	if s.PriceMax < 0 {
		return fmt.Errorf("malformed feature space: negative price max %v", s.PriceMax)
	}

	for name, idx := range s.CategoryIndex {
		if idx < 0 || idx >= len(s.CategoryIndex) {
			return fmt.Errorf("malformed feature space: category %q at %d", name, idx)
		}
	}
	for name, idx := range s.BrandIndex {
		if idx < 0 || idx >= len(s.BrandIndex) {
			return fmt.Errorf("malformed feature space: brand %q at %d", name, idx)
		}
	}

	return nil
}
