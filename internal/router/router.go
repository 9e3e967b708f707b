// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gudangkita/inventory-backend/internal/config"
	"github.com/gudangkita/inventory-backend/internal/handlers"
	"github.com/gudangkita/inventory-backend/internal/middleware"
	"github.com/gudangkita/inventory-backend/internal/projector"
	"github.com/gudangkita/inventory-backend/internal/services"
	"github.com/gudangkita/inventory-backend/internal/store"
)

func Initialize(st store.Store, proj *projector.Projector, history *services.HistoryService, cfg *config.Config) *gin.Engine {
	// Initialize services
	stockService := services.NewStockService(st, proj.Products, history)
	categoryService := services.NewCategoryService(st)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(stockService, proj.Products)
	historyHandler := handlers.NewHistoryHandler(proj.History)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	exportHandler := handlers.NewExportHandler(proj.Products)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)

			mutating := products.Group("")
			mutating.Use(middleware.MutationRateLimit())
			{
				mutating.POST("", productHandler.CreateProduct)
				mutating.POST("/stock", productHandler.ApplyStockChange)
				mutating.PUT("/:id", productHandler.UpdateProduct)
				mutating.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		// History routes
		v1.GET("/history", historyHandler.GetHistory)

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.POST("", middleware.MutationRateLimit(), categoryHandler.CreateCategory)
		}

		// Chart aggregates
		v1.GET("/chart/stock-by-category", productHandler.GetStockByCategory)

		// Export routes
		v1.GET("/export/products.csv", exportHandler.ExportProductsCSV)
	}

	return r
}
