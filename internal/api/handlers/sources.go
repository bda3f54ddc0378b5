package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobscout/internal/scraper"
	"jobscout/internal/scraper/workers"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

// SourcesHandler lists the source adapters this deployment can scrape
func SourcesHandler(registry *scraper.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"sources":   registry.Sources(),
			"timestamp": time.Now(),
		})
	}
}

// DomainStatsHandler returns rate limiting statistics for a specific domain
func DomainStatsHandler(orchestrator *workers.Orchestrator) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()

		domain := c.Param("domain")
		if domain == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "missing_domain",
				Message:   "Domain parameter is required",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"domain":     domain,
			"stats":      orchestrator.DomainStats(domain),
			"request_id": requestID,
			"timestamp":  time.Now(),
		})
	}
}
