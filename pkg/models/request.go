package models

// ScrapeRequest represents the request payload for a multi-source scrape run.
// Keywords are free terms (hashtags allowed, order irrelevant); sources name
// registered adapters; time window is a fixed vocabulary token.
type ScrapeRequest struct {
	Keywords   []string `json:"keywords" validate:"required"`
	Sources    []string `json:"sources,omitempty" validate:"omitempty,dive,oneof=linkedin naukri indeed twitter"`
	TimeWindow string   `json:"time_window,omitempty" validate:"omitempty,oneof=1h 24h 7d 30d"`
}

// MatchRequest asks for a job/profile match score against a stored analysis.
type MatchRequest struct {
	JobSkills     []string         `json:"job_skills" validate:"required"`
	JobExperience string           `json:"job_experience,omitempty"`
	Profile       CandidateProfile `json:"profile" validate:"required"`
}
