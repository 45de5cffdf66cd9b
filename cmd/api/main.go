package main

import (
	"fmt"
	"net/http"
	"os"

	"paydown/internal/cache"
	"paydown/internal/config"
	"paydown/internal/database"
	"paydown/internal/handlers"
	"paydown/internal/logger"
	"paydown/internal/middleware"
	"paydown/internal/services"
	"paydown/internal/validation"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "paydown/internal/docs" // Import swagger docs
)

// @title           Paydown API
// @version         1.0
// @description     Paydown is a debt payoff planning API that tracks debts and payments and projects payoff timelines under avalanche, snowball, and custom strategies.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Projection cache: Redis when configured, in-process otherwise
	var projectionCache cache.Cache
	if appConfig.RedisAddr != "" {
		projectionCache = cache.NewRedis(appConfig.RedisAddr)
		log.Infof("Using Redis projection cache at %s", appConfig.RedisAddr)
	} else {
		projectionCache = cache.NewMemory()
		log.Info("Using in-process projection cache")
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	debtService := services.NewDebtService(db)
	paymentService := services.NewPaymentService(db, debtService)
	strategyService := services.NewStrategyService(db, projectionCache)
	auditService := services.NewAuditService(db)

	// Input schemas shared by all handlers
	schemas := validation.New()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	debtHandler := handlers.NewDebtHandler(debtService, auditService, schemas)
	paymentHandler := handlers.NewPaymentHandler(paymentService, auditService, schemas)
	strategyHandler := handlers.NewStrategyHandler(strategyService, auditService, schemas)

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

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Portfolio overview
	protected.GET("/dashboard", debtHandler.GetDashboard)

	// Debt routes
	debts := protected.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.GET("/:id", debtHandler.GetDebt)
	debts.PUT("/:id", debtHandler.UpdateDebt)
	debts.DELETE("/:id", debtHandler.DeleteDebt)
	debts.GET("/:id/progress", debtHandler.GetDebtProgress)
	debts.GET("/:id/payments", paymentHandler.GetDebtPayments)

	// Payment routes
	payments := protected.Group("/payments")
	payments.POST("", paymentHandler.LogPayment)
	payments.GET("", paymentHandler.GetPayments)
	payments.GET("/summary", paymentHandler.GetPaymentSummary)

	// Strategy routes
	strategies := protected.Group("/strategies")
	strategies.POST("", strategyHandler.CreateStrategy)
	strategies.GET("", strategyHandler.GetStrategies)
	strategies.GET("/compare", strategyHandler.CompareStrategies)
	strategies.GET("/:id", strategyHandler.GetStrategy)
	strategies.PUT("/:id", strategyHandler.UpdateStrategy)
	strategies.DELETE("/:id", strategyHandler.DeleteStrategy)
	strategies.POST("/:id/activate", strategyHandler.ActivateStrategy)
	strategies.GET("/:id/projection", strategyHandler.GetProjection)

	log.Infof("Starting Paydown backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
