package models

// RawPosting is what a source adapter yields for one listing. The core never
// mutates it beyond merging detail-fetch fields and attaching enrichment.
type RawPosting struct {
	Source       string   `json:"source"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	LocationText string   `json:"location_text,omitempty"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url"`
	PostedText   string   `json:"posted_text,omitempty"` // free-form, source-specific
	SalaryText   string   `json:"salary_text,omitempty"`
	Skills       []string `json:"skills,omitempty"` // declared by the source, if any
	ContactHints string   `json:"-"`                // raw text mined for contacts
}

// Merge copies non-empty detail fields onto the posting.
func (p *RawPosting) Merge(details RawPosting) {
	if details.Title != "" {
		p.Title = details.Title
	}
	if details.Company != "" {
		p.Company = details.Company
	}
	if details.LocationText != "" {
		p.LocationText = details.LocationText
	}
	if details.Description != "" {
		p.Description = details.Description
	}
	if details.PostedText != "" {
		p.PostedText = details.PostedText
	}
	if details.SalaryText != "" {
		p.SalaryText = details.SalaryText
	}
	if len(details.Skills) > 0 {
		p.Skills = append(p.Skills, details.Skills...)
	}
}

// Salary is the structured form parsed from free salary text.
type Salary struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
	Per      string  `json:"per"` // "year", "month"
}

// Location is the structured form parsed from free location text.
type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Remote  bool   `json:"remote"`
	Hybrid  bool   `json:"hybrid"`
	Raw     string `json:"raw,omitempty"`
}

// EnrichedPosting is a RawPosting composed with extractor and analyzer output.
// Immutable once built; enrichment fields stay nil when enrichment failed for
// this posting (the posting itself is retained).
type EnrichedPosting struct {
	RawPosting
	Contacts *ContactSet `json:"contacts,omitempty"`
	Analysis *Analysis   `json:"analysis,omitempty"`
}

// JobPosting is the serialized transport form handed to the boundary layer.
type JobPosting struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Company           string    `json:"company"`
	Location          *Location `json:"location,omitempty"`
	Description       string    `json:"description"`
	Skills            []string  `json:"skills"`
	PostedAt          string    `json:"posted_at"` // ISO-8601, UTC, "Z" suffix
	Source            string    `json:"source"`
	Salary            *Salary   `json:"salary,omitempty"`
	JobURL            string    `json:"job_url"`
	RecruiterName     string    `json:"recruiter_name,omitempty"`
	RecruiterEmail    string    `json:"recruiter_email,omitempty"`
	RecruiterPhone    string    `json:"recruiter_phone,omitempty"`
	RecruiterLinkedIn string    `json:"recruiter_linkedin,omitempty"`
}

// SourceResult is one adapter's outcome within a run.
type SourceResult struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
	Failed bool   `json:"failed"`
	Error  string `json:"error,omitempty"`
}

// ScrapeResult is the orchestrator's return value: the enriched, deduplicated
// set plus per-source accounting.
type ScrapeResult struct {
	Postings []EnrichedPosting       `json:"postings"`
	Sources  map[string]SourceResult `json:"sources"`
}
