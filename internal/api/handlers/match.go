package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobscout/internal/analyze"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

// MatchHandler scores a job's skill and experience profile against a
// candidate profile. Synchronous, pure computation.
func MatchHandler(analyzer *analyze.Analyzer) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := utils.GenerateRequestID()

		var req models.MatchRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		score := analyzer.MatchScore(req.JobSkills, req.JobExperience, req.Profile)

		return c.JSON(http.StatusOK, models.MatchResponse{
			MatchScore: score,
			RequestID:  requestID,
		})
	}
}
