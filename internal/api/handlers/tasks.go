package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"jobscout/internal/tasks"
	"jobscout/pkg/models"
)

func toStatusResponse(result *tasks.TaskResult) models.AsyncTaskStatusResponse {
	return models.AsyncTaskStatusResponse{
		ProcessID:      result.ProcessID,
		Status:         result.Status,
		Data:           result.Data,
		Error:          result.Error,
		CreatedAt:      result.CreatedAt,
		CompletedAt:    result.CompletedAt,
		ProcessingTime: result.ProcessingTime,
		Metadata:       result.Metadata,
	}
}

// TaskStatusHandler returns the current state of one async task
func TaskStatusHandler(taskManager tasks.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		processID := c.Param("id")
		if processID == "" {
			return c.JSON(http.StatusBadRequest, models.CreateAsyncErrorResponse(
				"missing_process_id",
				"Process ID parameter is required",
			))
		}

		result, err := taskManager.GetTaskResult(c.Request().Context(), processID)
		if err != nil {
			if errors.Is(err, tasks.ErrTaskNotFound) {
				return c.JSON(http.StatusNotFound, models.CreateAsyncErrorResponse(
					"task_not_found",
					"No task exists for the given process ID",
					processID,
				))
			}
			return c.JSON(http.StatusInternalServerError, models.CreateAsyncErrorResponse(
				"task_lookup_failed",
				err.Error(),
				processID,
			))
		}

		return c.JSON(http.StatusOK, toStatusResponse(result))
	}
}

// TaskListHandler lists all known tasks for monitoring
func TaskListHandler(taskManager tasks.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		results, err := taskManager.ListTasks(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.CreateAsyncErrorResponse(
				"task_list_failed",
				err.Error(),
			))
		}

		list := make([]models.AsyncTaskStatusResponse, 0, len(results))
		for _, result := range results {
			list = append(list, toStatusResponse(result))
		}

		return c.JSON(http.StatusOK, models.AsyncTaskListResponse{
			Success: true,
			Tasks:   list,
			Count:   len(list),
		})
	}
}
