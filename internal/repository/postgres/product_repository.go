package postgres

import (
	"context"
	"errors"
	"fmt"

	"styleMarket/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// FindByIDs returns the known products among ids, in no particular order.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}

	return products, nil
}

// FindByID returns nil, nil when no product has the id.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return &product, nil
}

// FindPage returns one page of the filtered catalog and the total number of
// matching rows.
func (r *ProductRepository) FindPage(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	var total int64
	err := r.DB.WithContext(ctx).
		Model(&domain.Product{}).
		Scopes(filterScope(filter)).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []domain.Product
	err = r.DB.WithContext(ctx).
		Scopes(filterScope(filter)).
		Order(orderClause(filter.SortBy, filter.SortOrder)).
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find products page: %w", err)
	}

	return products, total, nil
}

func filterScope(filter domain.ProductFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Gender != "" {
			db = db.Where("gender = ?", filter.Gender)
		}
		if filter.CategoryID != "" {
			db = db.Where("category_id = ?", filter.CategoryID)
		}
		if filter.MinPrice != nil {
			db = db.Where("price >= ?", *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			db = db.Where("price <= ?", *filter.MaxPrice)
		}
		return db
	}
}

func orderClause(sortBy, sortOrder string) string {
	direction := "ASC"
	if sortOrder == "desc" {
		direction = "DESC"
	}

	switch sortBy {
	case domain.SortByPrice:
		return "price " + direction + ", id ASC"
	case domain.SortByName:
		return "name " + direction + ", id ASC"
	case domain.SortByNewest:
		return "COALESCE(created_at, '1970-01-01'::timestamptz) " + direction + ", id " + direction
	case domain.SortByBestseller:
		return "is_bestseller " + direction + ", name ASC"
	default:
		return "id ASC"
	}
}
