package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"styleMarket/business/product"
	"styleMarket/domain"
)

type ProductService interface {
	ListProducts(ctx context.Context, query product.ListQuery, language string) (domain.ProductPage, error)
	GetProduct(ctx context.Context, id, language string) (domain.ProductView, error)
}

type ProductHandler struct {
	productService ProductService
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		timeout:        10 * time.Second,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	query := product.ListQuery{
		Gender:     c.QueryParam("gender"),
		CategoryID: firstQuery(c, "categoryId", "category_id"),
		MinPrice:   firstQuery(c, "minPrice", "min_price"),
		MaxPrice:   firstQuery(c, "maxPrice", "max_price"),
		SortBy:     firstQuery(c, "sortBy", "sort_by"),
		SortOrder:  firstQuery(c, "sortOrder", "sort_order"),
		Page:       c.QueryParam("page"),
		PageSize:   firstQuery(c, "pageSize", "page_size"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.productService.ListProducts(ctx, query, resolveLanguage(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(page))
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	view, err := h.productService.GetProduct(ctx, c.Param("id"), resolveLanguage(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(view))
}

// firstQuery returns the first non-empty query parameter among names.
func firstQuery(c echo.Context, names ...string) string {
	for _, name := range names {
		if v := c.QueryParam(name); v != "" {
			return v
		}
	}
	return ""
}
