package scraper

import (
	"context"

	"jobscout/pkg/models"
)

// SourceAdapter defines the capability set for one job source. The
// orchestrator depends only on this interface, never on concrete adapters.
type SourceAdapter interface {
	// Name returns the source identifier this adapter serves
	Name() string

	// ListPostings returns raw postings for the keywords within the time window
	ListPostings(ctx context.Context, keywords []string, timeWindow string) ([]models.RawPosting, error)

	// FetchDetails returns extended fields for a single posting URL
	FetchDetails(ctx context.Context, url string) (models.RawPosting, error)

	// ExtractContactHints returns the free text mined for contact candidates
	ExtractContactHints(ctx context.Context, posting *models.RawPosting) (string, error)

	// Close releases the adapter's session resources
	Close() error
}

// Authenticator is implemented by adapters whose source requires a login
// before listing. A false return or an error means the adapter is skipped
// for this run and reported as zero results.
type Authenticator interface {
	Login(ctx context.Context) (bool, error)
}
