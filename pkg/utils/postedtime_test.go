package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t *testing.T) Clock {
	t.Helper()
	instant, err := time.Parse(time.RFC3339, "2024-01-08T12:00:00Z")
	if err != nil {
		t.Fatalf("bad fixture instant: %v", err)
	}
	return func() time.Time { return instant }
}

func TestNormalizePostedTime(t *testing.T) {
	clock := fixedClock(t)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"hours ago", "2 hours ago", "2024-01-08T10:00:00Z"},
		{"hrs abbreviation", "3 hrs ago", "2024-01-08T09:00:00Z"},
		{"minutes ago", "45 minutes ago", "2024-01-08T11:15:00Z"},
		{"days ago", "5 days ago", "2024-01-03T12:00:00Z"},
		{"just now", "just now", "2024-01-08T12:00:00Z"},
		{"now", "now", "2024-01-08T12:00:00Z"},
		{"yesterday", "yesterday", "2024-01-07T12:00:00Z"},
		{"iso passthrough", "2023-12-01T08:30:00Z", "2023-12-01T08:30:00Z"},
		{"unparseable falls back to now", "posted recently", "2024-01-08T12:00:00Z"},
		{"empty falls back to now", "", "2024-01-08T12:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePostedTime(tt.input, clock))
		})
	}
}

func TestParseSalary(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		min, max float64
	}{
		{"lpa range", "3-5 LPA", 300000, 500000},
		{"single lakh", "₹ 4 lakh", 400000, 400000},
		{"decimal lakhs", "4.5 - 6.5 lakhs", 450000, 650000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseSalary(tt.input)
			if assert.NotNil(t, s) {
				assert.Equal(t, tt.min, s.Min)
				assert.Equal(t, tt.max, s.Max)
				assert.Equal(t, "INR", s.Currency)
				assert.Equal(t, "year", s.Per)
			}
		})
	}

	assert.Nil(t, ParseSalary("competitive salary"))
	assert.Nil(t, ParseSalary(""))
}

func TestParseLocation(t *testing.T) {
	remote := ParseLocation("Remote (India)")
	if assert.NotNil(t, remote) {
		assert.True(t, remote.Remote)
	}

	hybrid := ParseLocation("Hybrid - Bengaluru, Karnataka")
	if assert.NotNil(t, hybrid) {
		assert.True(t, hybrid.Hybrid)
		assert.False(t, hybrid.Remote)
	}

	city := ParseLocation("Mumbai, Maharashtra")
	if assert.NotNil(t, city) {
		assert.Equal(t, "Mumbai", city.City)
		assert.Equal(t, "Maharashtra", city.State)
		assert.Equal(t, "India", city.Country)
	}

	assert.Nil(t, ParseLocation("  "))
}

func TestPostingID(t *testing.T) {
	a := PostingID("https://example.com/j/1", "Go Developer", "Acme")
	b := PostingID("https://example.com/j/1", "go developer", "ACME")
	c := PostingID("https://example.com/j/2", "Go Developer", "Acme")

	assert.Equal(t, a, b, "id is case-insensitive on title and company")
	assert.NotEqual(t, a, c, "different URLs get different ids")
	assert.Len(t, a, 16)
}
