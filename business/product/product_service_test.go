//go:build !integration

package product

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"

	"styleMarket/domain"
)

type fakeProductRepo struct {
	products   []domain.Product
	total      int64
	err        error
	lastFilter domain.ProductFilter
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) FindPage(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	f.lastFilter = filter
	return f.products, f.total, f.err
}

func TestFilter(t *testing.T) {
	svc := NewProductService(&fakeProductRepo{}, validator.New())

	tests := []struct {
		name  string
		query ListQuery
		check func(t *testing.T, f domain.ProductFilter)
	}{
		{"defaults", ListQuery{}, func(t *testing.T, f domain.ProductFilter) {
			if f.Page != 1 || f.PageSize != domain.DefaultPageSize || f.SortBy != domain.SortByName || f.SortOrder != "asc" {
				t.Errorf("filter = %+v", f)
			}
			if f.Gender != "" || f.MinPrice != nil || f.MaxPrice != nil {
				t.Errorf("unexpected filters: %+v", f)
			}
		}},
		{"page size capped", ListQuery{PageSize: "500", Page: "3"}, func(t *testing.T, f domain.ProductFilter) {
			if f.PageSize != domain.MaxPageSize || f.Page != 3 || f.Offset() != 200 {
				t.Errorf("filter = %+v", f)
			}
		}},
		{"swapped prices", ListQuery{MinPrice: "900", MaxPrice: "100"}, func(t *testing.T, f domain.ProductFilter) {
			if *f.MinPrice != 100 || *f.MaxPrice != 900 {
				t.Errorf("prices = %v..%v", *f.MinPrice, *f.MaxPrice)
			}
		}},
		{"bad values ignored", ListQuery{Gender: "robot", MinPrice: "cheap", SortBy: "random", Page: "-1"}, func(t *testing.T, f domain.ProductFilter) {
			if f.Gender != "" || f.MinPrice != nil || f.SortBy != domain.SortByName || f.Page != 1 {
				t.Errorf("filter = %+v", f)
			}
		}},
		{"newest defaults desc", ListQuery{SortBy: "Newest", Gender: "WOMEN", CategoryID: " Outerwear "}, func(t *testing.T, f domain.ProductFilter) {
			if f.SortBy != domain.SortByNewest || f.SortOrder != "desc" || f.Gender != "women" || f.CategoryID != "outerwear" {
				t.Errorf("filter = %+v", f)
			}
		}},
		{"explicit order wins", ListQuery{SortBy: "bestseller", SortOrder: "asc"}, func(t *testing.T, f domain.ProductFilter) {
			if f.SortOrder != "asc" {
				t.Errorf("SortOrder = %q", f.SortOrder)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, svc.Filter(tt.query))
		})
	}
}

func TestListProducts(t *testing.T) {
	repo := &fakeProductRepo{
		products: []domain.Product{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}},
		total:    41,
	}
	svc := NewProductService(repo, validator.New())

	page, err := svc.ListProducts(context.Background(), ListQuery{PageSize: "20", Page: "2"}, "en")
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(page.Items) != 2 || page.Total != 41 || page.TotalPages != 3 || page.Page != 2 {
		t.Errorf("page = %+v", page)
	}

	repo.products, repo.total = nil, 0
	page, err = svc.ListProducts(context.Background(), ListQuery{}, "en")
	if err != nil || page.Items == nil || page.TotalPages != 0 {
		t.Errorf("empty page = %+v, %v", page, err)
	}
}

func TestGetProduct(t *testing.T) {
	repo := &fakeProductRepo{products: []domain.Product{{ID: "prod-1", Name: "Parka"}}}
	svc := NewProductService(repo, validator.New())
	ctx := context.Background()

	view, err := svc.GetProduct(ctx, " prod-1 ", "ru")
	if err != nil || view.ID != "prod-1" || view.Name != "Parka" {
		t.Errorf("GetProduct() = %+v, %v", view, err)
	}

	var appErr *domain.AppError
	if _, err := svc.GetProduct(ctx, "missing", "en"); !errors.As(err, &appErr) || appErr.Status != http.StatusNotFound {
		t.Errorf("GetProduct(missing) error = %v, want 404", err)
	}
	if _, err := svc.GetProduct(ctx, "", "en"); !domain.IsValidation(err) {
		t.Errorf("GetProduct(\"\") error = %v, want validation", err)
	}

	repo.err = errors.New("db down")
	if _, err := svc.GetProduct(ctx, "prod-1", "en"); !errors.As(err, &appErr) || appErr.Status != http.StatusInternalServerError {
		t.Errorf("GetProduct() error = %v, want 500", err)
	}
}
