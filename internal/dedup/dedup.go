// Package dedup collapses postings gathered from multiple sources into a
// unique set. Two postings are duplicates when they share an exact URL or a
// normalized title+company identity.
package dedup

import (
	"strings"

	"jobscout/pkg/models"
)

// identityKey normalizes title and company for cross-source comparison
func identityKey(title, company string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(company))
}

// Deduplicate returns the postings with duplicates removed. The first
// occurrence wins; relative order of survivors is preserved.
func Deduplicate(postings []models.EnrichedPosting) []models.EnrichedPosting {
	seenURLs := make(map[string]bool, len(postings))
	seenKeys := make(map[string]bool, len(postings))

	unique := make([]models.EnrichedPosting, 0, len(postings))
	for _, p := range postings {
		url := strings.TrimSpace(p.URL)
		if url != "" && seenURLs[url] {
			continue
		}

		key := identityKey(p.Title, p.Company)
		if key != "|" && seenKeys[key] {
			continue
		}

		if url != "" {
			seenURLs[url] = true
		}
		if key != "|" {
			seenKeys[key] = true
		}
		unique = append(unique, p)
	}
	return unique
}
