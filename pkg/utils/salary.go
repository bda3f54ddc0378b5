package utils

import (
	"regexp"
	"strconv"
	"strings"

	"jobscout/pkg/models"
)

var lakhRangeRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*-?\s*(\d+(?:\.\d+)?)?\s*(?:lakhs?|lpa)`)

// ParseSalary turns free salary text ("3-5 LPA", "₹ 4 lakh") into a
// structured range. Lakh figures are converted to absolute INR per year.
// Returns nil when the text carries no parseable figure.
func ParseSalary(text string) *models.Salary {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	m := lakhRangeRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	min, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	max := min
	if m[2] != "" {
		if v, err := strconv.ParseFloat(m[2], 64); err == nil {
			max = v
		}
	}
	if max < min {
		min, max = max, min
	}

	return &models.Salary{
		Min:      min * 100000,
		Max:      max * 100000,
		Currency: "INR",
		Per:      "year",
	}
}

// ParseLocation turns free location text into a structured location. Remote
// and hybrid markers are flagged; otherwise the text splits on commas into
// city and state. Country defaults to India for the supported sources.
func ParseLocation(text string) *models.Location {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil
	}

	loc := &models.Location{Raw: raw, Country: "India"}

	lower := strings.ToLower(raw)
	if strings.Contains(lower, "remote") || strings.Contains(lower, "work from home") || strings.Contains(lower, "wfh") {
		loc.Remote = true
		return loc
	}
	if strings.Contains(lower, "hybrid") {
		loc.Hybrid = true
	}

	parts := strings.Split(raw, ",")
	loc.City = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		loc.State = strings.TrimSpace(parts[1])
	}

	return loc
}
