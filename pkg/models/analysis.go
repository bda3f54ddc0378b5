package models

// Analysis is the heuristic text-analysis output for one job description.
type Analysis struct {
	Skills          []string `json:"skills"`
	Requirements    []string `json:"requirements"`
	Benefits        []string `json:"benefits"`
	Sentiment       float64  `json:"sentiment"` // [-1,1], 0 when no capability
	UrgencyScore    float64  `json:"urgency_score"`
	QualityScore    float64  `json:"quality_score"`
	Category        string   `json:"category,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	SalaryMentioned bool     `json:"salary_mentioned"`
	RemoteFriendly  bool     `json:"remote_friendly"`
	CompanySize     string   `json:"company_size,omitempty"` // startup, medium, large
}

// CandidateProfile is the profile side of a job/profile match computation.
type CandidateProfile struct {
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	Location        string   `json:"location,omitempty"`
}
