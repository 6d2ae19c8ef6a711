package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/havenlabs/haven/backend/internal/config"
	"github.com/havenlabs/haven/backend/internal/handlers"
	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/internal/middleware"
	"github.com/havenlabs/haven/backend/internal/notify"
	"github.com/havenlabs/haven/backend/internal/repository"
	"github.com/havenlabs/haven/backend/internal/service"
	"github.com/havenlabs/haven/backend/pkg/supabase"
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

	log := initLogger(cfg)
	log.Info("starting haven api server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	// Initialize Supabase client
	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	// Initialize repositories
	checkInRepo := repository.NewCheckInRepository(supabaseClient)
	planRepo := repository.NewPlanRepository(supabaseClient)
	triggerDateRepo := repository.NewTriggerDateRepository(supabaseClient)
	badDayRepo := repository.NewBadDayStateRepository(supabaseClient)
	summaryRepo := repository.NewSummaryRepository(supabaseClient)

	// Initialize services
	notifier := notify.NewFromKind(cfg.Notify.Kind)
	planService := service.NewPlanService(planRepo, nil)
	checkInService := service.NewCheckInService(checkInRepo, planRepo, badDayRepo, triggerDateRepo, planService, notifier, nil)
	badDayService := service.NewBadDayService(badDayRepo, nil)
	insightService := service.NewInsightService(checkInRepo, nil)
	triggerDateService := service.NewTriggerDateService(triggerDateRepo)
	summaryService := service.NewSummaryService(summaryRepo, checkInRepo, planRepo, cfg.Batch.Concurrency, nil)

	// Initialize handlers
	checkInHandler := handlers.NewCheckInHandler(checkInService)
	planHandler := handlers.NewPlanHandler(planService)
	triggerDateHandler := handlers.NewTriggerDateHandler(triggerDateService)
	badDayHandler := handlers.NewBadDayHandler(badDayService)
	insightsHandler := handlers.NewInsightsHandler(insightService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
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
	{
		protected := v1.Group("")
		protected.Use(middleware.Auth(supabaseClient))
		{
			// Check-in routes
			protected.GET("/check-ins", checkInHandler.GetCheckIns)
			protected.POST("/check-ins", middleware.RateLimitWrites(), checkInHandler.CreateCheckIn)
			protected.GET("/check-ins/:date", checkInHandler.GetCheckIn)
			protected.POST("/check-ins/:date/crisis-ack", checkInHandler.AcknowledgeCrisis)

			// Daily plan routes
			protected.GET("/plans/today", planHandler.GetToday)
			protected.POST("/plans/:id/actions/:actionID/complete", planHandler.CompleteAction)
			protected.POST("/plans/:id/actions/:actionID/skip", planHandler.SkipAction)
			protected.POST("/plans/:id/actions/:actionID/swap", planHandler.SwapAction)

			// Trigger date routes
			protected.GET("/trigger-dates", triggerDateHandler.List)
			protected.POST("/trigger-dates", triggerDateHandler.Create)
			protected.DELETE("/trigger-dates/:id", triggerDateHandler.Delete)
			protected.GET("/trigger-dates/upcoming", triggerDateHandler.Upcoming)

			// Bad-day-mode routes
			protected.GET("/bad-day-mode", badDayHandler.Get)
			protected.POST("/bad-day-mode/sos", badDayHandler.RecordSOS)
			protected.POST("/bad-day-mode/deactivate", badDayHandler.Deactivate)

			// Insight routes
			protected.GET("/insights/prediction", insightsHandler.GetPrediction)
			protected.GET("/insights/patterns", insightsHandler.GetPatterns)
			protected.GET("/insights/streaks", insightsHandler.GetStreaks)

			// Weekly summary routes
			protected.GET("/summaries", summaryHandler.ListSummaries)
		}
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// initLogger builds the process logger from config and installs it as the
// package default.
func initLogger(cfg *config.Config) logger.Logger {
	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(cfg.Log.Level)
	logCfg.Format = cfg.Log.Format
	logCfg.Backend = cfg.Log.Backend
	logCfg.FilePath = cfg.Log.FilePath

	log := logger.New(logCfg)
	logger.SetDefault(log)
	return log
}
