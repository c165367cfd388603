package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"fiscalbook/internal/cache"
	"fiscalbook/internal/config"
	"fiscalbook/internal/handlers"
	"fiscalbook/internal/logger"
	"fiscalbook/internal/middleware"
	"fiscalbook/internal/reassign"
	"fiscalbook/internal/store"
	"fiscalbook/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Open the local cache store
	kv, err := cache.OpenSQLite(appConfig.CacheDBPath)
	if err != nil {
		return fmt.Errorf("failed to open cache store: %w", err)
	}
	defer kv.Close()

	// Initialize remote stores
	client := store.NewClient(appConfig.BackendBaseURL, appConfig.BackendTimeout)
	txStore := store.NewTransactionStore(client)
	bookStore := store.NewFiscalBookStore(client)

	// Warm the transaction list cache. A startup without a reachable
	// backend is fine when a persisted snapshot exists.
	listCache := cache.NewListCache(kv, txStore)
	if err := listCache.Start(context.Background()); err != nil {
		log.Warnf("Cache start deferred, backend unreachable: %v", err)
	}

	engine := reassign.NewEngine(bookStore)

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(listCache, txStore)
	fiscalBookHandler := handlers.NewFiscalBookHandler(bookStore)
	reassignHandler := handlers.NewReassignHandler(engine, bookStore, listCache)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.List)
	transactions.GET("/periods", transactionHandler.Periods)
	transactions.GET("/:id", transactionHandler.GetByID)
	transactions.POST("", transactionHandler.Create)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.POST("/:id/separate", transactionHandler.Separate)
	transactions.DELETE("/:id", transactionHandler.Delete)
	transactions.DELETE("", transactionHandler.BulkDelete)
	transactions.POST("/search", transactionHandler.Search)
	transactions.POST("/category", transactionHandler.SelectCategory)
	transactions.POST("/restore", transactionHandler.Restore)
	transactions.PUT("/period", transactionHandler.ChangePeriod)

	// Fiscal book routes
	books := v1.Group("/fiscal-books")
	books.GET("", fiscalBookHandler.List)
	books.GET("/:id", fiscalBookHandler.GetByID)
	books.POST("", fiscalBookHandler.Create)
	books.PUT("/:id", fiscalBookHandler.Update)
	books.DELETE("/:id", fiscalBookHandler.Delete)
	books.POST("/:id/close", fiscalBookHandler.Close)
	books.POST("/:id/reopen", fiscalBookHandler.Reopen)
	books.POST("/:id/archive", fiscalBookHandler.Archive)
	books.GET("/:id/export", fiscalBookHandler.Export)

	// Bulk reassignment routes
	reassignGroup := v1.Group("/reassign")
	reassignGroup.POST("/assign", reassignHandler.Assign)
	reassignGroup.POST("/remove", reassignHandler.Remove)
	reassignGroup.POST("/transfer", reassignHandler.Transfer)

	log.Infof("Starting fiscal book client server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
