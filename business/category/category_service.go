package category

import (
	"context"
	"fmt"

	"styleMarket/domain"
	"styleMarket/pkg/logger"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
}

type categoryService struct {
	categoryRepo CategoryRepository
}

func NewCategoryService(categoryRepo CategoryRepository) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) ListCategories(ctx context.Context, language string) ([]domain.CategoryView, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all categories", "error", err)
		return nil, domain.NewInternalError(domain.CodeCategoriesFailed, "Unable to retrieve categories", err)
	}

	views := make([]domain.CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, c.View(language))
	}

	return views, nil
}
