package models

import "time"

// JobListResponse carries a page of stored postings
type JobListResponse struct {
	Success bool         `json:"success"`
	Jobs    []JobPosting `json:"jobs"`
	Count   int          `json:"count"`
	Total   int64        `json:"total"`
}

// MatchResponse carries a computed job/profile match score
type MatchResponse struct {
	MatchScore float64 `json:"match_score"`
	RequestID  string  `json:"request_id"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
