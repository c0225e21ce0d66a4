package router

import (
	"styleMarket/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	recs := api.Group("/recs")
	recs.GET("/similar", handler.Similar)
	recs.POST("/personal", handler.Personal)

	api.GET("/recommendations/personalized", handler.ForUser, authRequired)
}

func SetProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")
	products.GET("", handler.ListProducts)
	products.GET("/:id", handler.GetProduct)
}

func SetCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler) {
	api.GET("/categories", handler.ListCategories)
}

func SetRatingRoutes(api *echo.Group, handler *rest.RatingHandler, authRequired echo.MiddlewareFunc) {
	ratings := api.Group("/ratings")
	ratings.GET("/export", handler.Export)
	ratings.POST("", handler.Rate, authRequired)
	ratings.GET("", handler.MyRatings, authRequired)
}
