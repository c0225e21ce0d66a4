package rating

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"styleMarket/domain"
	"styleMarket/pkg/logger"
)

// RatingRepository contract interface
type RatingRepository interface {
	Upsert(ctx context.Context, rating *domain.Rating) error
	FindByUser(ctx context.Context, userID uint) ([]domain.Rating, error)
	FindAll(ctx context.Context) ([]domain.Rating, error)
}

// RatingRequest is the raw body of a rating submission.
type RatingRequest struct {
	ProductID any `json:"productId"`
	Rating    any `json:"rating"`
}

type ratingInput struct {
	ProductID string `validate:"required"`
	Rating    int    `validate:"gte=1,lte=5"`
}

type ratingService struct {
	ratingRepo RatingRepository
	validate   *validator.Validate
}

func NewRatingService(ratingRepo RatingRepository, validate *validator.Validate) *ratingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		validate:   validate,
	}
}

// Rate stores userID's rating of a product, replacing an earlier one.
func (s *ratingService) Rate(ctx context.Context, userID uint, req RatingRequest) (domain.Rating, error) {
	input, err := s.parse(req)
	if err != nil {
		return domain.Rating{}, err
	}

	if err := ctx.Err(); err != nil {
		return domain.Rating{}, fmt.Errorf("context error: %w", err)
	}

	record := domain.Rating{
		UserID:    userID,
		ProductID: input.ProductID,
		Rating:    input.Rating,
	}
	if err := s.ratingRepo.Upsert(ctx, &record); err != nil {
		logger.Error("failed to save rating", "user_id", userID, "product_id", input.ProductID, "error", err)
		return domain.Rating{}, domain.NewInternalError(domain.CodeRatingSaveFailed, "Unable to save rating", err)
	}

	return record, nil
}

func (s *ratingService) UserRatings(ctx context.Context, userID uint) ([]domain.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	ratings, err := s.ratingRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("failed to load ratings", "user_id", userID, "error", err)
		return nil, domain.NewInternalError(domain.CodeRatingsFetchFailed, "Unable to load ratings", err)
	}

	return ratings, nil
}

// Export returns every rating for the offline training pipeline.
func (s *ratingService) Export(ctx context.Context) ([]domain.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	ratings, err := s.ratingRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to export ratings", "error", err)
		return nil, domain.NewInternalError(domain.CodeRatingsExportFailed, "Unable to export ratings", err)
	}

	return ratings, nil
}

// parse coerces the raw body and checks it. Product ids must be strings;
// ratings may be JSON numbers or numeric strings but must be whole.
func (s *ratingService) parse(req RatingRequest) (ratingInput, error) {
	var input ratingInput

	if id, ok := req.ProductID.(string); ok {
		input.ProductID = strings.TrimSpace(id)
	}
	if err := s.validate.Var(input.ProductID, "required"); err != nil {
		return input, domain.NewValidationError(domain.CodeInvalidProductID, "productId is required")
	}

	value, ok := wholeNumber(req.Rating)
	if !ok {
		return input, domain.NewValidationError(domain.CodeInvalidRating, "rating must be an integer between 1 and 5")
	}
	input.Rating = value

	if err := s.validate.Struct(&input); err != nil {
		return input, domain.NewValidationError(domain.CodeInvalidRating, "rating must be an integer between 1 and 5")
	}

	return input, nil
}

func wholeNumber(raw any) (int, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
