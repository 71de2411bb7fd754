package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/store"
	"fintrack/internal/validator"
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

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators for request binding
	validator.Register()

	// Rate limiting (fail-open when Redis is not configured)
	middleware.InitRedisRateLimiter(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)

	// Initialize the store gateway and services
	gateway := store.New(dbManager.DB())
	dashboardService := services.NewDashboardService(gateway, gateway)
	transactionService := services.NewTransactionService(gateway, dashboardService)
	userService := services.NewUserService(gateway, gateway, services.LogCodeSender{}, appConfig.OTPExpirationDur)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	settingsHandler := handlers.NewSettingsHandler(userService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, userService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
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

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes; sign-in code issuance is rate limited per client IP
	auth := v1.Group("/auth")
	auth.POST("/otp", middleware.RedisRateLimit(5, time.Minute), authHandler.RequestOTP)
	auth.POST("/verify", middleware.RedisRateLimit(10, time.Minute), authHandler.VerifyOTP)
	auth.POST("/refresh", authHandler.Refresh)

	// Avatar blobs are public; names are unguessable UUIDs
	v1.GET("/avatar/:name", settingsHandler.GetAvatar)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/signout", authHandler.SignOut)
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/settings", settingsHandler.UpdateSettings)
	protected.POST("/avatar", settingsHandler.UploadAvatar)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.Create)
	transactions.GET("", transactionHandler.List)
	transactions.GET("/:id", transactionHandler.GetByID)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	// Dashboard
	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	log.Infof("Starting Fintrack backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
