package product

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

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindPage(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error)
}

// ListQuery carries the raw listing parameters as received. Unusable values
// are ignored rather than rejected.
type ListQuery struct {
	Gender     string
	CategoryID string
	MinPrice   string
	MaxPrice   string
	SortBy     string
	SortOrder  string
	Page       string
	PageSize   string
}

type productService struct {
	productRepo ProductRepository
	validate    *validator.Validate
}

func NewProductService(productRepo ProductRepository, validate *validator.Validate) *productService {
	return &productService{
		productRepo: productRepo,
		validate:    validate,
	}
}

func (s *productService) ListProducts(ctx context.Context, query ListQuery, language string) (domain.ProductPage, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing products")
		return domain.ProductPage{}, fmt.Errorf("context error: %w", err)
	}

	filter := s.Filter(query)

	products, total, err := s.productRepo.FindPage(ctx, filter)
	if err != nil {
		logger.Error("failed to list products", "error", err)
		return domain.ProductPage{}, domain.NewInternalError(domain.CodeProductsFetchFailed, "Unable to retrieve products", err)
	}

	items := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		items = append(items, p.View(language))
	}

	var totalPages int64
	if total > 0 {
		totalPages = (total + int64(filter.PageSize) - 1) / int64(filter.PageSize)
	}

	return domain.ProductPage{
		Items:      items,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *productService) GetProduct(ctx context.Context, id, language string) (domain.ProductView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ProductView{}, domain.NewValidationError(domain.CodeInvalidProductID, "product id is required")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product")
		return domain.ProductView{}, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", "product_id", id, "error", err)
		return domain.ProductView{}, domain.NewInternalError(domain.CodeProductsFetchFailed, "Unable to retrieve product", err)
	}
	if product == nil {
		return domain.ProductView{}, domain.NewNotFoundError(domain.CodeProductNotFound, "Product not found")
	}

	return product.View(language), nil
}

// Filter turns raw listing parameters into a filter. Swapped price bounds
// are reordered; the page size is capped.
func (s *productService) Filter(query ListQuery) domain.ProductFilter {
	filter := domain.ProductFilter{
		CategoryID: strings.ToLower(strings.TrimSpace(query.CategoryID)),
		MinPrice:   optionalNumber(query.MinPrice),
		MaxPrice:   optionalNumber(query.MaxPrice),
		Page:       positiveInt(query.Page, 1),
		PageSize:   min(positiveInt(query.PageSize, domain.DefaultPageSize), domain.MaxPageSize),
	}

	if gender := strings.ToLower(strings.TrimSpace(query.Gender)); s.validate.Var(gender, "oneof=men women unisex") == nil {
		filter.Gender = gender
	}

	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		filter.MinPrice, filter.MaxPrice = filter.MaxPrice, filter.MinPrice
	}

	filter.SortBy = domain.SortByName
	if sortBy := strings.ToLower(strings.TrimSpace(query.SortBy)); s.validate.Var(sortBy, "oneof=price name newest bestseller") == nil {
		filter.SortBy = sortBy
	}

	filter.SortOrder = "asc"
	if filter.SortBy == domain.SortByNewest || filter.SortBy == domain.SortByBestseller {
		filter.SortOrder = "desc"
	}
	if order := strings.ToLower(strings.TrimSpace(query.SortOrder)); s.validate.Var(order, "oneof=asc desc") == nil {
		filter.SortOrder = order
	}

	return filter
}

func optionalNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func positiveInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
