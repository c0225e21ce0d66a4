package postgres

import (
	"context"
	"fmt"
	"time"

	"styleMarket/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{
		DB: db,
	}
}

// Upsert stores the user's rating of a product, replacing an earlier one.
// rating is refreshed from the stored row, keeping the original id and
// created_at on update.
func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	rating.UpdatedAt = time.Now()

	err := r.DB.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
			},
			clause.Returning{},
		).
		Create(rating).Error
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	return nil
}

func (r *RatingRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ratings []domain.Rating
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find ratings: %w", err)
	}

	return ratings, nil
}

func (r *RatingRepository) FindAll(ctx context.Context) ([]domain.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ratings []domain.Rating
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find ratings: %w", err)
	}

	return ratings, nil
}
