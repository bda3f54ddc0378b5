package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jobscout/internal/logging"
	"jobscout/internal/tasks"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

var validate = validator.New()

// ScrapeHandler accepts a multi-source scrape request and hands it to the
// background task manager, replying 202 with a process ID to poll.
func ScrapeHandler(taskManager tasks.TaskManager, runner tasks.ScrapeRunner) echo.HandlerFunc {
	return func(c echo.Context) error {
		processID := utils.GenerateRequestID()
		logger := logging.GetGlobalLogger()

		var req models.ScrapeRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind scrape request", map[string]interface{}{
				"process_id": processID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: processID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Scrape request validation failed", map[string]interface{}{
				"process_id": processID,
				"error":      err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: processID,
				Timestamp: time.Now(),
			})
		}

		logger.Info("Scrape request accepted", map[string]interface{}{
			"process_id":  processID,
			"keywords":    req.Keywords,
			"sources":     req.Sources,
			"time_window": req.TimeWindow,
		})

		if err := taskManager.SubmitScrapeTask(c.Request().Context(), processID, req, runner); err != nil {
			logger.Error("Failed to submit scrape task", map[string]interface{}{
				"process_id": processID,
				"error":      err.Error(),
			})

			status := http.StatusInternalServerError
			if strings.Contains(err.Error(), "queue is full") {
				status = http.StatusServiceUnavailable
			}
			return c.JSON(status, models.CreateAsyncErrorResponse(
				"task_submission_failed",
				err.Error(),
				processID,
			))
		}

		return c.JSON(http.StatusAccepted, models.CreateAsyncScrapeResponse(processID))
	}
}
