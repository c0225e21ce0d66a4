package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"styleMarket/app/echo-server/metrics"
	"styleMarket/app/echo-server/router"
	"styleMarket/business/category"
	"styleMarket/business/product"
	"styleMarket/business/rating"
	"styleMarket/business/recommendation"
	"styleMarket/internal/middleware"
	"styleMarket/internal/repository/mlservice"
	psqlRepo "styleMarket/internal/repository/postgres"
	"styleMarket/internal/rest"
	"styleMarket/pkg/config"
	"styleMarket/pkg/database"
	"styleMarket/pkg/logger"
	gatewayMetrics "styleMarket/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment, cfg.Log.Level)
	logger.Info("Starting Style Market API", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()
	gatewayMetrics.Init()

	// Init validate
	validate := validator.New()

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	ratingRepo := psqlRepo.NewRatingRepository(db)

	recommender := mlservice.NewClient(mlservice.Config{
		BaseURL:  cfg.Recommender.BaseURL,
		Timeout:  cfg.Recommender.Timeout,
		Username: cfg.Recommender.Username,
		Password: cfg.Recommender.Password,
	})
	if !recommender.Configured() {
		logger.Warn("Recommender URL not set, serving local recommendations only")
	}

	// Init service
	recommendationService := recommendation.NewService(productRepo, recommender)
	productService := product.NewProductService(productRepo, validate)
	categoryService := category.NewCategoryService(categoryRepo)
	ratingService := rating.NewRatingService(ratingRepo, validate)

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(recommendationService, cfg.Recommender.Timeout+5*time.Second)
	productHandler := rest.NewProductHandler(productService)
	categoryHandler := rest.NewCategoryHandler(categoryService)
	ratingHandler := rest.NewRatingHandler(ratingService, cfg.Ratings.ExportToken)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = rest.JSONSerializer{}

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Accept-Language", rest.HeaderExportToken, middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}))
	e.Use(middleware.Trace())
	e.Use(metrics.Middleware())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			logger.Error("Health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetRecommendationRoutes(api, recommendationHandler, authRequired)
	router.SetProductRoutes(api, productHandler)
	router.SetCategoryRoutes(api, categoryHandler)
	router.SetRatingRoutes(api, ratingHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
