package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/analyze"
	"jobscout/internal/config"
	"jobscout/internal/extract"
	"jobscout/internal/scraper"
	"jobscout/internal/tasks"
	"jobscout/pkg/models"
)

// fakeAdapter is a scripted source adapter for orchestrator tests
type fakeAdapter struct {
	name      string
	postings  []models.RawPosting
	listErr   error
	loginOK   bool
	loginErr  error
	listCalls *int32
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) ListPostings(ctx context.Context, keywords []string, timeWindow string) ([]models.RawPosting, error) {
	if f.listCalls != nil {
		atomic.AddInt32(f.listCalls, 1)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.postings, nil
}

func (f *fakeAdapter) FetchDetails(ctx context.Context, url string) (models.RawPosting, error) {
	return models.RawPosting{}, nil
}

func (f *fakeAdapter) ExtractContactHints(ctx context.Context, posting *models.RawPosting) (string, error) {
	return posting.Description, nil
}

func (f *fakeAdapter) Close() error { return nil }

// fakeAuthAdapter adds a scripted login on top of fakeAdapter
type fakeAuthAdapter struct {
	fakeAdapter
}

func (f *fakeAuthAdapter) Login(ctx context.Context) (bool, error) {
	return f.loginOK, f.loginErr
}

func rawPosting(source, title, company, url string) models.RawPosting {
	return models.RawPosting{
		Source:      source,
		Title:       title,
		Company:     company,
		URL:         url,
		Description: "Looking for engineers with python and strong communication skills to join our growing team.",
	}
}

func newTestOrchestrator(t *testing.T, registry *scraper.Registry) *Orchestrator {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	extractor := extract.NewExtractor(cfg)
	analyzer := analyze.NewAnalyzer(cfg, nil)
	o := NewOrchestrator(cfg, registry, extractor, analyzer)
	t.Cleanup(o.Stop)
	return o
}

func registerFake(registry *scraper.Registry, adapter scraper.SourceAdapter) {
	registry.Register(adapter.Name(), func() (scraper.SourceAdapter, error) {
		return adapter, nil
	})
}

func TestRunScrapeEmptyKeywordsNoDispatch(t *testing.T) {
	var calls int32
	registry := scraper.NewRegistry()
	registerFake(registry, &fakeAdapter{name: "alpha", listCalls: &calls})

	o := newTestOrchestrator(t, registry)

	for _, keywords := range [][]string{nil, {}, {"", "   "}} {
		result, err := o.RunScrape(context.Background(), models.ScrapeRequest{Keywords: keywords, Sources: []string{"alpha"}}, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Postings)
		assert.Empty(t, result.Sources)
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "no source touched")
}

func TestRunScrapeUnknownSourcesExcluded(t *testing.T) {
	var calls int32
	registry := scraper.NewRegistry()
	registerFake(registry, &fakeAdapter{
		name:      "alpha",
		listCalls: &calls,
		postings:  []models.RawPosting{rawPosting("alpha", "Backend Engineer", "Acme", "https://alpha.example/1")},
	})

	o := newTestOrchestrator(t, registry)

	result, err := o.RunScrape(context.Background(), models.ScrapeRequest{
		Keywords: []string{"golang"},
		Sources:  []string{"alpha", "nonexistent"},
	}, nil)
	require.NoError(t, err)

	assert.Len(t, result.Postings, 1)
	assert.Len(t, result.Sources, 1)
	_, found := result.Sources["nonexistent"]
	assert.False(t, found, "unknown source silently dropped")
}

func TestRunScrapeFailureIsolation(t *testing.T) {
	registry := scraper.NewRegistry()
	registerFake(registry, &fakeAdapter{
		name: "alpha",
		postings: []models.RawPosting{
			rawPosting("alpha", "Backend Engineer", "Acme", "https://alpha.example/1"),
			rawPosting("alpha", "Data Scientist", "Initech", "https://alpha.example/2"),
		},
	})
	registerFake(registry, &fakeAdapter{name: "beta", listErr: errors.New("source unreachable")})

	o := newTestOrchestrator(t, registry)
	task := tasks.NewScrapeTask("proc-1", []string{"golang"}, nil, 3, 5)
	task.Start()

	result, err := o.RunScrape(context.Background(), models.ScrapeRequest{
		Keywords: []string{"golang"},
		Sources:  []string{"alpha", "beta"},
	}, task)
	require.NoError(t, err, "single source failure never fails the run")

	assert.Len(t, result.Postings, 2)

	alpha := result.Sources["alpha"]
	assert.Equal(t, 2, alpha.Count)
	assert.False(t, alpha.Failed)

	beta := result.Sources["beta"]
	assert.Equal(t, 0, beta.Count)
	assert.True(t, beta.Failed)
	assert.Equal(t, "source unreachable", beta.Error)

	assert.Equal(t, 2, task.Snapshot().ItemsProcessed)
}

func TestRunScrapeDeduplicatesAcrossSources(t *testing.T) {
	registry := scraper.NewRegistry()
	registerFake(registry, &fakeAdapter{
		name:     "alpha",
		postings: []models.RawPosting{rawPosting("alpha", "Backend Engineer", "Acme", "https://alpha.example/1")},
	})
	registerFake(registry, &fakeAdapter{
		name:     "beta",
		postings: []models.RawPosting{rawPosting("beta", "backend engineer", "ACME", "https://beta.example/9")},
	})

	o := newTestOrchestrator(t, registry)

	result, err := o.RunScrape(context.Background(), models.ScrapeRequest{
		Keywords: []string{"golang"},
		Sources:  []string{"alpha", "beta"},
	}, nil)
	require.NoError(t, err)

	assert.Len(t, result.Postings, 1, "same title and company collapse")
	assert.Equal(t, 1, result.Sources["alpha"].Count)
	assert.Equal(t, 1, result.Sources["beta"].Count)
}

func TestRunScrapeLoginHandling(t *testing.T) {
	declined := &fakeAuthAdapter{fakeAdapter: fakeAdapter{
		name:     "declined",
		postings: []models.RawPosting{rawPosting("declined", "Engineer", "Acme", "https://declined.example/1")},
	}}
	declined.loginOK = false

	broken := &fakeAuthAdapter{fakeAdapter: fakeAdapter{name: "broken"}}
	broken.loginErr = errors.New("invalid credentials")

	registry := scraper.NewRegistry()
	registerFake(registry, declined)
	registerFake(registry, broken)

	o := newTestOrchestrator(t, registry)

	result, err := o.RunScrape(context.Background(), models.ScrapeRequest{
		Keywords: []string{"golang"},
		Sources:  []string{"declined", "broken"},
	}, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Postings)
	assert.False(t, result.Sources["declined"].Failed, "declined login is a clean skip")
	assert.Equal(t, 0, result.Sources["declined"].Count)
	assert.True(t, result.Sources["broken"].Failed)
}

func TestRunScrapeEnrichment(t *testing.T) {
	posting := rawPosting("alpha", "Backend Engineer", "Acme", "https://alpha.example/1")
	posting.Description = "Hiring Python engineers. Requirements: 5+ years building backend services in Python\n\nContact careers@acme.com or +919812345678."

	registry := scraper.NewRegistry()
	registerFake(registry, &fakeAdapter{name: "alpha", postings: []models.RawPosting{posting}})

	o := newTestOrchestrator(t, registry)

	result, err := o.RunScrape(context.Background(), models.ScrapeRequest{
		Keywords: []string{"python"},
		Sources:  []string{"alpha"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, result.Postings, 1)

	enriched := result.Postings[0]
	require.NotNil(t, enriched.Contacts)
	assert.Equal(t, "careers@acme.com", enriched.Contacts.BestEmail())
	assert.Equal(t, "+919812345678", enriched.Contacts.BestPhone())

	require.NotNil(t, enriched.Analysis)
	assert.Contains(t, enriched.Analysis.Skills, "python")
}
