package main

import (
	"fmt"
	"net/http"
	"os"

	"emitrack/internal/config"
	"emitrack/internal/database"
	"emitrack/internal/handlers"
	"emitrack/internal/logger"
	"emitrack/internal/middleware"
	"emitrack/internal/services"
	"emitrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "emitrack/internal/docs" // Import swagger docs
)

// @title           EMITrack API
// @version         1.0
// @description     EMITrack is a personal loan tracker: it derives EMI schedules from loan terms and keeps them consistent through prepayments, step-ups, and interest-rate changes.

// @host      localhost:8080
// @BasePath  /api/v1

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

	// Register custom validation tags
	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	loanService := services.NewLoanService(db)
	scheduleService := services.NewScheduleService(db)
	modificationService := services.NewModificationService(db)

	// Initialize handlers
	loanHandler := handlers.NewLoanHandler(loanService, auditService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, auditService)
	modificationHandler := handlers.NewModificationHandler(modificationService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
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

	// Loan routes
	loans := v1.Group("/loans")
	loans.POST("", loanHandler.CreateLoan)
	loans.GET("", loanHandler.GetLoans)
	loans.GET("/:id", loanHandler.GetLoan)
	loans.PUT("/:id", loanHandler.UpdateLoan)
	loans.DELETE("/:id", loanHandler.DeleteLoan)
	loans.GET("/:id/summary", loanHandler.GetLoanSummary)

	// Schedule routes
	loans.GET("/:id/schedule", scheduleHandler.GetSchedule)
	loans.POST("/:id/schedule/regenerate", scheduleHandler.RegenerateSchedule)
	loans.PATCH("/:id/schedule/:seq/paid", scheduleHandler.MarkInstallmentPaid)
	loans.PATCH("/:id/schedule/due-dates", scheduleHandler.ShiftDueDates)
	loans.GET("/:id/schedule/export", scheduleHandler.ExportSchedule)

	// Modification routes
	loans.POST("/:id/prepayment", modificationHandler.ApplyPrepayment)
	loans.POST("/:id/step-up", modificationHandler.ApplyStepUp)
	loans.POST("/:id/interest-rate", modificationHandler.ChangeInterestRate)
	loans.GET("/:id/modifications", modificationHandler.ListModifications)

	log.Infof("Starting EMITrack server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
