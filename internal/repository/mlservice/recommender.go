package mlservice

import (
	"context"
	"net/http"

	"styleMarket/domain"
)

const (
	pathSimilar      = "/recs/similar"
	pathPersonal     = "/recs/personal"
	pathPersonalized = "/recs/personalized"
)

type personalBody struct {
	Categories []string  `json:"categories,omitempty"`
	Brands     []string  `json:"brands,omitempty"`
	PriceRange []float64 `json:"priceRange,omitempty"`
}

func (c *Client) Similar(ctx context.Context, productID string, limit int) ([]domain.RemoteRecommendation, error) {
	return c.FetchRecommendations(ctx, Request{
		Path:   pathSimilar,
		Method: http.MethodGet,
		Query: map[string]any{
			"product_id": productID,
			"limit":      limit,
		},
	})
}

// Personal posts the validated preference profile.
func (c *Client) Personal(ctx context.Context, profile domain.PreferenceProfile, limit int) ([]domain.RemoteRecommendation, error) {
	body := personalBody{
		Categories: profile.Categories,
		Brands:     profile.Brands,
	}
	if profile.PriceRange != nil {
		body.PriceRange = []float64{profile.PriceRange.Min, profile.PriceRange.Max}
	}

	return c.FetchRecommendations(ctx, Request{
		Path:   pathPersonal,
		Method: http.MethodPost,
		Query:  map[string]any{"limit": limit},
		Body:   body,
	})
}

func (c *Client) ForUser(ctx context.Context, userID uint, limit int) ([]domain.RemoteRecommendation, error) {
	return c.FetchRecommendations(ctx, Request{
		Path:   pathPersonalized,
		Method: http.MethodGet,
		Query: map[string]any{
			"user_id": userID,
			"limit":   limit,
		},
	})
}
