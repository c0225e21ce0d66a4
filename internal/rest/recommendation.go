package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"styleMarket/business/recommendation"
	"styleMarket/domain"
)

type RecommendationService interface {
	GetSimilar(ctx context.Context, productID string, limit int, language string) ([]domain.CandidateView, error)
	GetPersonalized(ctx context.Context, req recommendation.ProfileRequest, limit int, language string) ([]domain.CandidateView, error)
	GetForUser(ctx context.Context, userID uint, limit int, language string) ([]domain.CandidateView, error)
}

type RecommendationHandler struct {
	service RecommendationService
	timeout time.Duration
}

// NewRecommendationHandler builds the handler. timeout bounds a whole
// request, so it must exceed the recommender call budget to leave room for
// the local fallback.
func NewRecommendationHandler(service RecommendationService, timeout time.Duration) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		timeout: timeout,
	}
}

// Similar serves GET /recs/similar?product_id=&limit=&lang=
func (h *RecommendationHandler) Similar(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.service.GetSimilar(ctx, c.QueryParam("product_id"), queryLimit(c), resolveLanguage(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

// Personal serves POST /recs/personal with a preference profile body.
func (h *RecommendationHandler) Personal(c echo.Context) error {
	var req recommendation.ProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.service.GetPersonalized(ctx, req, queryLimit(c), resolveLanguage(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

// ForUser serves recommendations for the authenticated user.
func (h *RecommendationHandler) ForUser(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.service.GetForUser(ctx, uid, queryLimit(c), resolveLanguage(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}
