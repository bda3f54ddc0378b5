package workers

import (
	"context"
	"strings"
	"sync"
	"time"

	"jobscout/internal/analyze"
	"jobscout/internal/config"
	"jobscout/internal/dedup"
	"jobscout/internal/extract"
	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
	"jobscout/internal/scraper"
	"jobscout/internal/storage"
	"jobscout/internal/tasks"
	"jobscout/pkg/models"
)

// Orchestrator fans a scrape request out across source adapters with bounded
// concurrency. Each source runs as one isolated unit: its own adapter
// session, its own error. One source failing never aborts the others.
type Orchestrator struct {
	config    *config.Config
	registry  *scraper.Registry
	extractor *extract.Extractor
	analyzer  *analyze.Analyzer
	limiter   *RateLimiter
	store     storage.PostingStore
	logger    types.Logger
}

// NewOrchestrator creates a scrape orchestrator
func NewOrchestrator(cfg *config.Config, registry *scraper.Registry, extractor *extract.Extractor, analyzer *analyze.Analyzer) *Orchestrator {
	return &Orchestrator{
		config:    cfg,
		registry:  registry,
		extractor: extractor,
		analyzer:  analyzer,
		limiter:   NewRateLimiter(cfg),
		logger:    logging.GetGlobalLogger(),
	}
}

// SetPostingStore enables persistence of deduplicated postings after each run
func (o *Orchestrator) SetPostingStore(store storage.PostingStore) {
	o.store = store
}

// Stop releases orchestrator resources
func (o *Orchestrator) Stop() {
	o.limiter.Stop()
}

// DomainStats exposes rate limiter counters for one domain
func (o *Orchestrator) DomainStats(domain string) map[string]interface{} {
	return o.limiter.GetDomainStats(domain)
}

// sourceOutcome is the (value, error) pair one source unit produces
type sourceOutcome struct {
	source   string
	postings []models.EnrichedPosting
	err      error
	skipped  bool
}

// RunScrape executes one scrape run. Empty keywords return an empty result
// without touching any source; unknown sources are silently excluded. The
// returned error is reserved for run-level failures, never a single source.
func (o *Orchestrator) RunScrape(ctx context.Context, request models.ScrapeRequest, task *tasks.ScrapeTask) (*models.ScrapeResult, error) {
	result := &models.ScrapeResult{
		Postings: []models.EnrichedPosting{},
		Sources:  make(map[string]models.SourceResult),
	}

	keywords := trimKeywords(request.Keywords)
	if len(keywords) == 0 {
		o.logger.Info("Scrape request carries no keywords, nothing to do", map[string]interface{}{})
		return result, nil
	}

	requested := request.Sources
	if len(requested) == 0 {
		requested = o.config.Scraper.Sources
	}
	if len(requested) == 0 {
		requested = o.registry.Sources()
	}
	sources := o.registry.Resolve(requested)
	if len(sources) == 0 {
		o.logger.Warn("No known sources resolved from request", map[string]interface{}{
			"requested": requested,
		})
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, o.scrapeTimeout())
	defer cancel()

	poolSize := o.config.Workers.PoolSize
	if poolSize <= 0 {
		poolSize = 3
	}

	o.logger.Info("Starting scrape run", map[string]interface{}{
		"keywords":    keywords,
		"sources":     sources,
		"time_window": request.TimeWindow,
		"pool_size":   poolSize,
	})

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, poolSize)
	)

	for _, source := range sources {
		// Cancellation is honored between unit dispatches
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(source string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				result.Sources[source] = models.SourceResult{
					Source: source,
					Failed: true,
					Error:  ctx.Err().Error(),
				}
				mu.Unlock()
				return
			}

			outcome := o.scrapeSource(ctx, source, keywords, request.TimeWindow, task)

			mu.Lock()
			defer mu.Unlock()

			if outcome.err != nil {
				o.logger.Error("Source scrape failed", map[string]interface{}{
					"source": source,
					"error":  outcome.err.Error(),
				})
				result.Sources[source] = models.SourceResult{
					Source: source,
					Failed: true,
					Error:  outcome.err.Error(),
				}
				return
			}

			result.Postings = append(result.Postings, outcome.postings...)
			result.Sources[source] = models.SourceResult{
				Source: source,
				Count:  len(outcome.postings),
			}
		}(source)
	}

	wg.Wait()

	before := len(result.Postings)
	result.Postings = dedup.Deduplicate(result.Postings)

	if o.store != nil {
		for _, posting := range result.Postings {
			if _, err := o.store.Save(ctx, posting); err != nil {
				o.logger.Warn("Failed to persist posting", map[string]interface{}{
					"url":   posting.URL,
					"error": err.Error(),
				})
			}
		}
	}

	o.logger.Info("Scrape run finished", map[string]interface{}{
		"postings":   len(result.Postings),
		"duplicates": before - len(result.Postings),
		"sources":    len(result.Sources),
	})

	return result, nil
}

// scrapeSource runs one source's full pipeline: open, optional login, list,
// per-posting detail fetch and enrichment, close.
func (o *Orchestrator) scrapeSource(ctx context.Context, source string, keywords []string, timeWindow string, task *tasks.ScrapeTask) sourceOutcome {
	adapter, err := o.registry.Open(source)
	if err != nil {
		return sourceOutcome{source: source, err: err}
	}
	defer func() {
		if closeErr := adapter.Close(); closeErr != nil {
			o.logger.Warn("Failed to close source adapter", map[string]interface{}{
				"source": source,
				"error":  closeErr.Error(),
			})
		}
	}()

	if auth, ok := adapter.(scraper.Authenticator); ok {
		loggedIn, err := auth.Login(ctx)
		if err != nil {
			return sourceOutcome{source: source, err: err}
		}
		if !loggedIn {
			o.logger.Warn("Source login unavailable, skipping", map[string]interface{}{
				"source": source,
			})
			return sourceOutcome{source: source, skipped: true}
		}
	}

	raws, err := adapter.ListPostings(ctx, keywords, timeWindow)
	if err != nil {
		return sourceOutcome{source: source, err: err}
	}

	postings := make([]models.EnrichedPosting, 0, len(raws))
	for _, raw := range raws {
		if ctx.Err() != nil {
			break
		}
		postings = append(postings, o.enrichPosting(ctx, adapter, raw, task))
	}

	return sourceOutcome{source: source, postings: postings}
}

// enrichPosting fetches details and attaches contact and analysis data. Any
// per-posting failure downgrades that posting, never drops it.
func (o *Orchestrator) enrichPosting(ctx context.Context, adapter scraper.SourceAdapter, raw models.RawPosting, task *tasks.ScrapeTask) models.EnrichedPosting {
	succeeded := true
	domain := extractDomainFromURL(raw.URL)

	if raw.URL != "" {
		if err := o.limiter.Wait(ctx, domain); err != nil {
			o.logger.Debug("Detail fetch throttled", map[string]interface{}{
				"source": raw.Source,
				"domain": domain,
				"error":  err.Error(),
			})
			succeeded = false
		} else {
			details, err := adapter.FetchDetails(ctx, raw.URL)
			if err != nil {
				o.limiter.RecordFailure(domain, err)
				o.logger.Debug("Detail fetch failed, keeping listing data", map[string]interface{}{
					"source": raw.Source,
					"url":    raw.URL,
					"error":  err.Error(),
				})
				succeeded = false
			} else {
				o.limiter.RecordSuccess(domain)
				raw.Merge(details)
			}
		}
	}

	enriched := models.EnrichedPosting{RawPosting: raw}

	hints, err := adapter.ExtractContactHints(ctx, &raw)
	if err != nil {
		hints = raw.Description
	}
	if strings.TrimSpace(hints) != "" {
		contacts := o.extractor.ExtractAll(hints, raw.URL)
		enriched.Contacts = contacts
	}

	if o.analyzer != nil {
		enriched.Analysis = o.analyzer.AnalyzeDescription(ctx, raw.Description)
	}

	if task != nil {
		task.RecordItem(succeeded)
	}

	return enriched
}

func trimKeywords(keywords []string) []string {
	trimmed := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k != "" {
			trimmed = append(trimmed, k)
		}
	}
	return trimmed
}

// scrapeTimeout derives the per-run deadline from configuration
func (o *Orchestrator) scrapeTimeout() time.Duration {
	if o.config.Workers.Timeout > 0 {
		return o.config.Workers.Timeout
	}
	return 2 * time.Minute
}
