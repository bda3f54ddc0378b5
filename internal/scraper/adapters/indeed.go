package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mendableai/firecrawl-go"

	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
	"jobscout/pkg/models"
)

const indeedBaseURL = "https://in.indeed.com"

// indeedTimeFilters maps the window vocabulary onto Indeed's fromage
// parameter (days). Indeed tops out at 14 days.
var indeedTimeFilters = map[string]string{
	"1h":  "1",
	"24h": "1",
	"7d":  "7",
	"30d": "14",
}

// IndeedAdapter fetches indeed.com search pages through the Firecrawl API
// instead of a local browser. Its session is the API client.
type IndeedAdapter struct {
	cfg    *config.Config
	app    *firecrawl.FirecrawlApp
	logger types.Logger
}

// NewIndeedAdapter creates an indeed adapter backed by Firecrawl
func NewIndeedAdapter(cfg *config.Config) (*IndeedAdapter, error) {
	app, err := firecrawl.NewFirecrawlApp(cfg.Firecrawl.APIKey, cfg.Firecrawl.APIURL)
	if err != nil {
		return nil, fmt.Errorf("firecrawl init: %w", err)
	}

	return &IndeedAdapter{
		cfg:    cfg,
		app:    app,
		logger: logging.GetGlobalLogger(),
	}, nil
}

func (a *IndeedAdapter) Name() string {
	return "indeed"
}

// fetchHTML scrapes one URL through Firecrawl and returns its HTML
func (a *IndeedAdapter) fetchHTML(pageURL string) (string, error) {
	doc, err := a.app.ScrapeURL(pageURL, &firecrawl.ScrapeParams{
		Formats: a.cfg.Firecrawl.Formats,
	})
	if err != nil {
		return "", fmt.Errorf("firecrawl scrape %s: %w", pageURL, err)
	}
	if doc.HTML == "" {
		return "", fmt.Errorf("firecrawl returned no HTML for %s", pageURL)
	}
	return doc.HTML, nil
}

// ListPostings fetches the search results page and parses the job cards
func (a *IndeedAdapter) ListPostings(ctx context.Context, keywords []string, timeWindow string) ([]models.RawPosting, error) {
	searchURL := fmt.Sprintf("%s/jobs?q=%s&l=India&fromage=%s",
		indeedBaseURL, url.QueryEscape(searchQuery(keywords)), indeedTimeFilters[timeWindow])

	html, err := a.fetchHTML(searchURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("indeed results parse: %w", err)
	}

	var postings []models.RawPosting
	doc.Find("[data-jk]").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		jobID, _ := card.Attr("data-jk")
		if jobID == "" {
			return true
		}

		title := cardAttr(card, "h2 a span[title]", "title")
		if title == "" {
			title = cardText(card, "h2 a")
		}
		if title == "" {
			return true
		}

		postings = append(postings, models.RawPosting{
			Source:       a.Name(),
			Title:        title,
			Company:      cardText(card, "[data-testid='company-name']"),
			LocationText: cardText(card, "[data-testid='job-location']"),
			Description:  cardText(card, "[data-testid='job-snippet']"),
			URL:          fmt.Sprintf("%s/viewjob?jk=%s", indeedBaseURL, jobID),
			PostedText:   cardText(card, "[data-testid='myJobsStateDate'], .date"),
			SalaryText:   cardText(card, "[data-testid='attribute_snippet_testid']"),
		})
		return len(postings) < a.cfg.Scraper.MaxPostings
	})

	a.logger.Debug("Indeed search complete", map[string]interface{}{
		"count": len(postings),
	})
	return postings, nil
}

// FetchDetails fetches the posting page for the full description
func (a *IndeedAdapter) FetchDetails(ctx context.Context, jobURL string) (models.RawPosting, error) {
	var details models.RawPosting

	html, err := a.fetchHTML(jobURL)
	if err != nil {
		return details, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return details, fmt.Errorf("indeed details parse: %w", err)
	}

	details.Description = strings.TrimSpace(
		doc.Find("#jobDescriptionText, [data-testid='jobsearch-jobDescriptionText']").First().Text())
	details.SalaryText = strings.TrimSpace(doc.Find("[data-testid='job-salary']").First().Text())
	return details, nil
}

// ExtractContactHints returns the description; Indeed postings rarely carry
// more contact surface than the description body.
func (a *IndeedAdapter) ExtractContactHints(ctx context.Context, posting *models.RawPosting) (string, error) {
	return posting.Description, nil
}

// Close is a no-op; the Firecrawl client holds no connection state
func (a *IndeedAdapter) Close() error {
	return nil
}
