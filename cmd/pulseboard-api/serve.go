package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pulseboard/backend/internal/config"
	"github.com/pulseboard/backend/internal/handlers"
	"github.com/pulseboard/backend/internal/logger"
	"github.com/pulseboard/backend/internal/middleware"
	"github.com/pulseboard/backend/internal/repository"
	"github.com/pulseboard/backend/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	logger.SetDefault(logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	}))

	logger.Info("starting pulseboard API server",
		logger.String("env", cfg.Server.Env),
		logger.String("database", cfg.Database.Path))

	// Open the database and run migrations
	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	activityRepo := repository.NewActivityRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	metricRepo := repository.NewDailyMetricRepository(db)

	// Initialize services
	ingestService := service.NewIngestService(activityRepo, metricRepo)
	goalService := service.NewGoalService(goalRepo, metricRepo)
	insightService := service.NewInsightService(activityRepo, goalRepo, metricRepo)

	// Initialize handlers
	ingestHandler := handlers.NewIngestHandler(ingestService)
	goalHandler := handlers.NewGoalHandler(goalService)
	analyticsHandler := handlers.NewAnalyticsHandler(insightService)
	insightsHandler := handlers.NewInsightsHandler(insightService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders(cfg.Server.Env))
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identity())
	{
		v1.POST("/ingest/:source", middleware.RateLimitIngest(), ingestHandler.Ingest)
		v1.GET("/activities", ingestHandler.ListActivities)

		v1.GET("/goals", goalHandler.ListGoals)
		v1.POST("/goals", goalHandler.CreateGoal)
		v1.GET("/goals/:id", goalHandler.GetGoal)
		v1.PATCH("/goals/:id", goalHandler.UpdateGoal)
		v1.DELETE("/goals/:id", goalHandler.DeleteGoal)
		v1.GET("/goals/:id/progress", goalHandler.GetProgress)
		v1.GET("/goals/:id/streak", goalHandler.GetStreak)

		v1.GET("/analytics/trend", analyticsHandler.GetTrend)
		v1.GET("/analytics/correlation", analyticsHandler.GetCorrelation)
		v1.GET("/analytics/deficit", analyticsHandler.GetDeficit)
		v1.GET("/analytics/activity-trend", analyticsHandler.GetActivityTrend)
		v1.GET("/analytics/sleep-activity", analyticsHandler.GetSleepActivity)

		v1.GET("/insights", insightsHandler.GetInsights)
	}

	logger.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
