package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobscout/internal/analyze"
	"jobscout/internal/api/handlers"
	"jobscout/internal/api/middleware"
	"jobscout/internal/config"
	"jobscout/internal/scraper"
	"jobscout/internal/scraper/workers"
	"jobscout/internal/storage"
	"jobscout/internal/tasks"
	"jobscout/pkg/utils"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, registry *scraper.Registry, orchestrator *workers.Orchestrator, analyzer *analyze.Analyzer, taskManager tasks.TaskManager, postingStore storage.PostingStore, redisClient *utils.RedisClient) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.TimeoutConfig(30 * time.Second))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(taskManager, redisClient))
		health.GET("/live", handlers.LivenessHandler)
	}

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		v1.POST("/scrape", handlers.ScrapeHandler(taskManager, orchestrator))
		v1.POST("/match", handlers.MatchHandler(analyzer))

		v1.GET("/tasks", handlers.TaskListHandler(taskManager))
		v1.GET("/tasks/:id", handlers.TaskStatusHandler(taskManager))

		v1.GET("/jobs", handlers.JobListHandler(postingStore))
		v1.GET("/jobs/:id", handlers.JobGetHandler(postingStore))

		v1.GET("/sources", handlers.SourcesHandler(registry))

		domains := v1.Group("/domains")
		{
			domains.GET("/:domain/stats", handlers.DomainStatsHandler(orchestrator))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "JobScout",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
