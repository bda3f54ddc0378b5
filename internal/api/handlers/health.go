package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobscout/internal/tasks"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

var startTime = time.Now()

const serviceVersion = "1.0.0"

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the service can take scrape requests
func ReadinessHandler(taskManager tasks.TaskManager, redisClient *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{"api": "ok"}
		status := "ready"
		httpStatus := http.StatusOK

		if taskManager != nil {
			if taskManager.IsHealthy() {
				checks["tasks"] = "ok"
			} else {
				checks["tasks"] = "unavailable"
				status = "not ready"
				httpStatus = http.StatusServiceUnavailable
			}
		}

		if redisClient != nil {
			if err := redisClient.IsHealthy(c.Request().Context()); err == nil {
				checks["redis"] = "ok"
			} else {
				checks["redis"] = "unavailable"
			}
		}

		response := models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   serviceVersion,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}

		return c.JSON(httpStatus, response)
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}
