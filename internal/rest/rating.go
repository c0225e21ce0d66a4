package rest

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"styleMarket/business/rating"
	"styleMarket/domain"
)

const HeaderExportToken = "X-Export-Token"

type RatingService interface {
	Rate(ctx context.Context, userID uint, req rating.RatingRequest) (domain.Rating, error)
	UserRatings(ctx context.Context, userID uint) ([]domain.Rating, error)
	Export(ctx context.Context) ([]domain.Rating, error)
}

type RatingHandler struct {
	ratingService RatingService
	exportToken   string
	timeout       time.Duration
}

// NewRatingHandler builds the handler. An empty exportToken leaves the
// export endpoint open.
func NewRatingHandler(ratingService RatingService, exportToken string) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		exportToken:   exportToken,
		timeout:       10 * time.Second,
	}
}

func (h *RatingHandler) Rate(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req rating.RatingRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.ratingService.Rate(ctx, uid, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(saved))
}

func (h *RatingHandler) MyRatings(c echo.Context) error {
	uid, ok := userID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ratings, err := h.ratingService.UserRatings(ctx, uid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ratings))
}

// Export dumps every rating for offline model training.
func (h *RatingHandler) Export(c echo.Context) error {
	if h.exportToken != "" {
		provided := c.QueryParam("token")
		if provided == "" {
			provided = c.Request().Header.Get(HeaderExportToken)
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.exportToken)) != 1 {
			return domain.NewForbiddenError("Invalid export token")
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ratings, err := h.ratingService.Export(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(ratings))
}
