package recommendation

import (
	"math"

	"styleMarket/domain"
)

// ProductVector projects a product into the space: one-hot category, one-hot
// brand and the normalized price.
func ProductVector(p domain.Product, space FeatureSpace) []float64 {
	v := make([]float64, space.Size)

	if idx, ok := space.categoryDim(p.Category()); ok {
		v[idx] = 1
	}
	if idx, ok := space.brandDim(p.BrandName()); ok {
		v[idx] = 1
	}
	v[space.PriceIndex] = normalizePrice(p.NumericPrice(), space.PriceMax)

	return v
}

// ProfileVector projects a preference profile into the space. Every named
// category and brand present in the space is set (multi-hot); unknown names
// are ignored. The price coordinate is the normalized midpoint of the range.
func ProfileVector(profile domain.PreferenceProfile, space FeatureSpace) []float64 {
	v := make([]float64, space.Size)

	for _, c := range profile.Categories {
		if idx, ok := space.categoryDim(c); ok {
			v[idx] = 1
		}
	}
	for _, b := range profile.Brands {
		if idx, ok := space.brandDim(b); ok {
			v[idx] = 1
		}
	}
	if profile.PriceRange != nil {
		v[space.PriceIndex] = normalizePrice(profile.PriceRange.Midpoint(), space.PriceMax)
	}

	return v
}

func normalizePrice(price, priceMax float64) float64 {
	if priceMax <= 0 {
		return 0
	}
	return math.Min(math.Max(price/priceMax, 0), 1)
}

func magnitude(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
