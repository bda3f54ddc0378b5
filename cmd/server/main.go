package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"jobscout/internal/analyze"
	"jobscout/internal/api/routes"
	"jobscout/internal/config"
	"jobscout/internal/extract"
	"jobscout/internal/logging"
	"jobscout/internal/scheduler"
	"jobscout/internal/scraper"
	"jobscout/internal/scraper/adapters"
	"jobscout/internal/scraper/session"
	"jobscout/internal/scraper/workers"
	"jobscout/internal/storage"
	"jobscout/internal/tasks"
	"jobscout/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting JobScout", map[string]interface{}{})

	// Redis is optional; stores fall back to memory without it
	var redisClient *utils.RedisClient
	var taskStore tasks.TaskStore
	var postingStore storage.PostingStore

	if cfg.Redis.URL != "" {
		client := utils.NewRedisClient(cfg)
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
		err := client.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("Redis unreachable, using in-memory stores", map[string]interface{}{
				"error": err.Error(),
			})
			client.Close()
		} else {
			redisClient = client
			defer redisClient.Close()
			taskStore = tasks.NewRedisTaskStore(redisClient, cfg.Tasks.MaxTaskAge)
			postingStore = storage.NewRedisPostingStore(redisClient)
			logger.Info("Redis connected", map[string]interface{}{})
		}
	}
	if taskStore == nil {
		taskStore = tasks.NewInMemoryTaskStore()
	}
	if postingStore == nil {
		postingStore = storage.NewMemoryPostingStore()
	}

	// Shared browser pool for the browser-backed adapters
	browsers := session.NewBrowserManager(cfg)
	defer browsers.Cleanup()

	// Source adapter registry: one fresh adapter per run
	registry := scraper.NewRegistry()
	registry.Register("linkedin", func() (scraper.SourceAdapter, error) {
		return adapters.NewLinkedInAdapter(cfg, browsers), nil
	})
	registry.Register("naukri", func() (scraper.SourceAdapter, error) {
		return adapters.NewNaukriAdapter(cfg, browsers), nil
	})
	registry.Register("twitter", func() (scraper.SourceAdapter, error) {
		return adapters.NewTwitterAdapter(cfg, browsers), nil
	})
	if cfg.Firecrawl.APIKey != "" {
		registry.Register("indeed", func() (scraper.SourceAdapter, error) {
			return adapters.NewIndeedAdapter(cfg)
		})
	} else {
		logger.Warn("Firecrawl API key missing, indeed source disabled", map[string]interface{}{})
	}

	// Enrichment pipeline
	extractor := extract.NewExtractor(cfg)

	var capability analyze.Capability
	if cfg.LLM.APIKey != "" {
		capability = analyze.NewClaudeCapability(cfg)
	} else {
		logger.Warn("LLM API key missing, sentiment and category analysis disabled", map[string]interface{}{})
	}
	analyzer := analyze.NewAnalyzer(cfg, capability)

	// Scrape orchestrator
	orchestrator := workers.NewOrchestrator(cfg, registry, extractor, analyzer)
	orchestrator.SetPostingStore(postingStore)
	defer orchestrator.Stop()

	// Background task manager
	taskManager := tasks.NewTaskManager(cfg, taskStore)
	if redisClient != nil {
		taskManager.SetProgressPublisher(tasks.NewRedisProgressPublisher(redisClient))
	}
	ctx := context.Background()
	if err := taskManager.Start(ctx); err != nil {
		logger.Fatal("Failed to start task manager", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Maintenance scheduler
	sched := scheduler.New(cfg, taskStore, postingStore)
	if err := sched.Start(); err != nil {
		logger.Fatal("Failed to start scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, cfg, registry, orchestrator, analyzer, taskManager, postingStore, redisClient)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...", map[string]interface{}{})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := taskManager.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping task manager", map[string]interface{}{
				"error": err.Error(),
			})
		}

		sched.Stop()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Server shutdown complete", map[string]interface{}{})
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{
		"address": address,
	})

	if err := e.Start(address); err != nil {
		logger.Error("Server stopped", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
