package recommendation

import (
	"math"
	"strconv"
	"strings"

	"styleMarket/domain"
)

const (
	msgInvalidCategories = "categories must be an array of non-empty strings"
	msgInvalidBrands     = "brands must be an array of non-empty strings"
	msgInvalidPriceRange = "priceRange must be [min, max] with non-negative numbers"
	msgInvalidProductID  = "product_id is required"
)

// ProfileRequest is the raw preference body. Fields stay untyped so that a
// wrong JSON type becomes a field-specific validation error instead of a
// generic decode failure.
type ProfileRequest struct {
	Categories any `json:"categories"`
	Brands     any `json:"brands"`
	PriceRange any `json:"priceRange"`
}

// Profile validates the request. A null or missing field is absent; anything
// else must be well-formed, and the first violation is returned.
func (r ProfileRequest) Profile() (domain.PreferenceProfile, error) {
	var profile domain.PreferenceProfile

	categories, ok := stringList(r.Categories)
	if !ok {
		return profile, domain.NewValidationError(domain.CodeInvalidCategories, msgInvalidCategories)
	}
	brands, ok := stringList(r.Brands)
	if !ok {
		return profile, domain.NewValidationError(domain.CodeInvalidBrands, msgInvalidBrands)
	}
	priceRange, ok := parsePriceRange(r.PriceRange)
	if !ok {
		return profile, domain.NewValidationError(domain.CodeInvalidPriceRange, msgInvalidPriceRange)
	}

	profile.Categories = categories
	profile.Brands = brands
	profile.PriceRange = priceRange
	return profile, nil
}

// ValidateProductID trims the id and rejects an empty one.
func ValidateProductID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", domain.NewValidationError(domain.CodeInvalidProductID, msgInvalidProductID)
	}
	return id, nil
}

func stringList(raw any) ([]string, bool) {
	if raw == nil {
		return nil, true
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []string:
		items = make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
	default:
		return nil, false
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, false
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, true
}

func parsePriceRange(raw any) (*domain.PriceRange, bool) {
	if raw == nil {
		return nil, true
	}

	var bounds []any
	switch v := raw.(type) {
	case []any:
		bounds = v
	case []float64:
		bounds = make([]any, len(v))
		for i, f := range v {
			bounds[i] = f
		}
	default:
		return nil, false
	}
	if len(bounds) != 2 {
		return nil, false
	}

	lo, ok := priceBound(bounds[0])
	if !ok {
		return nil, false
	}
	hi, ok := priceBound(bounds[1])
	if !ok {
		return nil, false
	}
	if lo > hi {
		return nil, false
	}

	return &domain.PriceRange{Min: lo, Max: hi}, true
}

func priceBound(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return f, true
}
