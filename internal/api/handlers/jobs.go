package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"jobscout/internal/storage"
	"jobscout/pkg/models"
)

const defaultJobListLimit = 50

// JobListHandler lists stored postings, most recently saved first
func JobListHandler(store storage.PostingStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := defaultJobListLimit
		if raw := c.QueryParam("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				return c.JSON(http.StatusBadRequest, models.CreateAsyncErrorResponse(
					"invalid_limit",
					"limit must be a positive integer",
				))
			}
			limit = parsed
		}

		postings, err := store.List(c.Request().Context(), limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.CreateAsyncErrorResponse(
				"job_list_failed",
				err.Error(),
			))
		}

		total, err := store.Count(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.CreateAsyncErrorResponse(
				"job_count_failed",
				err.Error(),
			))
		}

		return c.JSON(http.StatusOK, models.JobListResponse{
			Success: true,
			Jobs:    postings,
			Count:   len(postings),
			Total:   total,
		})
	}
}

// JobGetHandler returns one stored posting by its ID
func JobGetHandler(store storage.PostingStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if id == "" {
			return c.JSON(http.StatusBadRequest, models.CreateAsyncErrorResponse(
				"missing_job_id",
				"Job ID parameter is required",
			))
		}

		posting, err := store.Get(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrPostingNotFound) {
				return c.JSON(http.StatusNotFound, models.CreateAsyncErrorResponse(
					"job_not_found",
					"No posting exists for the given ID",
				))
			}
			return c.JSON(http.StatusInternalServerError, models.CreateAsyncErrorResponse(
				"job_lookup_failed",
				err.Error(),
			))
		}

		return c.JSON(http.StatusOK, posting)
	}
}
