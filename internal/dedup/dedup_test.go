package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/pkg/models"
)

func posting(source, title, company, url string) models.EnrichedPosting {
	return models.EnrichedPosting{
		RawPosting: models.RawPosting{
			Source:  source,
			Title:   title,
			Company: company,
			URL:     url,
		},
	}
}

func TestDeduplicateByURL(t *testing.T) {
	postings := []models.EnrichedPosting{
		posting("linkedin", "Backend Engineer", "Acme", "https://example.com/j/1"),
		posting("naukri", "Backend Developer", "Acme Corp", "https://example.com/j/1"),
	}

	unique := Deduplicate(postings)
	require.Len(t, unique, 1)
	assert.Equal(t, "linkedin", unique[0].Source, "first occurrence wins")
}

func TestDeduplicateByTitleAndCompany(t *testing.T) {
	postings := []models.EnrichedPosting{
		posting("linkedin", "Backend Engineer", "Acme", "https://linkedin.com/jobs/1"),
		posting("naukri", "  backend engineer ", "ACME", "https://naukri.com/jobs/9"),
		posting("indeed", "Frontend Engineer", "Acme", "https://indeed.com/jobs/2"),
	}

	unique := Deduplicate(postings)
	require.Len(t, unique, 2)
	assert.Equal(t, "linkedin", unique[0].Source)
	assert.Equal(t, "indeed", unique[1].Source)
}

func TestDeduplicateIdempotent(t *testing.T) {
	postings := []models.EnrichedPosting{
		posting("linkedin", "Backend Engineer", "Acme", "https://example.com/j/1"),
		posting("naukri", "Backend Engineer", "Acme", "https://example.com/j/2"),
		posting("indeed", "Data Scientist", "Initech", "https://example.com/j/3"),
	}

	once := Deduplicate(postings)
	twice := Deduplicate(once)
	assert.Equal(t, once, twice)
}

func TestDeduplicateNeverGrows(t *testing.T) {
	postings := []models.EnrichedPosting{
		posting("linkedin", "A", "X", "u1"),
		posting("linkedin", "B", "Y", "u2"),
		posting("naukri", "C", "Z", "u3"),
	}

	unique := Deduplicate(postings)
	assert.LessOrEqual(t, len(unique), len(postings))
}

func TestDeduplicateEmptyInput(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
	assert.Empty(t, Deduplicate([]models.EnrichedPosting{}))
}
