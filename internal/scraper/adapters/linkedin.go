package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"

	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
	"jobscout/internal/scraper/session"
	"jobscout/pkg/models"
	"jobscout/pkg/utils"
)

const linkedinBaseURL = "https://www.linkedin.com"

// linkedinTimeFilters maps the window vocabulary onto LinkedIn's f_TPR
// parameter. LinkedIn has no 1h bucket so it widens to 24h.
var linkedinTimeFilters = map[string]string{
	"1h":  "r86400",
	"24h": "r86400",
	"7d":  "r604800",
	"30d": "r2592000",
}

// LinkedInAdapter scrapes linkedin.com job search through a stealth browser
// session. The source requires a login before listings are visible.
type LinkedInAdapter struct {
	cfg      *config.Config
	browsers *session.BrowserManager
	sess     *session.BrowserSession
	logger   types.Logger
	loggedIn bool
}

// NewLinkedInAdapter creates a session-scoped linkedin adapter
func NewLinkedInAdapter(cfg *config.Config, browsers *session.BrowserManager) *LinkedInAdapter {
	return &LinkedInAdapter{
		cfg:      cfg,
		browsers: browsers,
		logger:   logging.GetGlobalLogger(),
	}
}

func (a *LinkedInAdapter) Name() string {
	return "linkedin"
}

func (a *LinkedInAdapter) ensureSession(ctx context.Context) error {
	if a.sess != nil {
		return nil
	}
	sess, err := a.browsers.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("linkedin session: %w", err)
	}
	a.sess = sess
	return nil
}

// Login authenticates with the configured credentials. Missing credentials
// or a failed redirect report false without an error so the run skips this
// source instead of failing.
func (a *LinkedInAdapter) Login(ctx context.Context) (bool, error) {
	email := a.cfg.Scraper.LinkedIn.Email
	password := a.cfg.Scraper.LinkedIn.Password
	if email == "" || password == "" {
		a.logger.Warn("LinkedIn credentials not configured, skipping source", map[string]interface{}{})
		return false, nil
	}

	if err := a.ensureSession(ctx); err != nil {
		return false, err
	}

	if err := a.sess.Navigate(ctx, linkedinBaseURL+"/login", a.cfg.Scraper.RequestTimeout); err != nil {
		return false, err
	}
	if err := a.sess.Type("#username", email); err != nil {
		return false, err
	}
	if err := a.sess.Type("#password", password); err != nil {
		return false, err
	}
	if err := a.sess.Click("button[type=submit]"); err != nil {
		return false, err
	}

	var currentURL string
	err := rod.Try(func() {
		currentURL = a.sess.Page.MustInfo().URL
	})
	if err != nil {
		return false, fmt.Errorf("linkedin login check: %w", err)
	}

	a.loggedIn = strings.Contains(currentURL, "feed") || strings.Contains(currentURL, "/in/")
	if !a.loggedIn {
		a.logger.Warn("LinkedIn login did not reach the feed", map[string]interface{}{
			"landed_on": currentURL,
		})
	}
	return a.loggedIn, nil
}

// ListPostings runs a job search and parses the result cards
func (a *LinkedInAdapter) ListPostings(ctx context.Context, keywords []string, timeWindow string) ([]models.RawPosting, error) {
	if err := a.ensureSession(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/jobs/search/?keywords=%s",
		linkedinBaseURL, url.QueryEscape(searchQuery(keywords)))
	if tpr, ok := linkedinTimeFilters[timeWindow]; ok {
		searchURL += "&f_TPR=" + tpr
	}

	if err := a.sess.Navigate(ctx, searchURL, a.cfg.Scraper.RequestTimeout); err != nil {
		return nil, err
	}
	// Best effort: results may render late or not at all for thin queries
	_ = a.sess.WaitForSelector(".job-search-card", a.cfg.Scraper.RequestTimeout)

	html, err := a.sess.HTML()
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("linkedin results parse: %w", err)
	}

	var postings []models.RawPosting
	doc.Find(".job-search-card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := cardText(card, ".job-search-card__title")
		jobURL := cardAttr(card, ".job-search-card__title a, a.base-card__full-link", "href")
		if jobURL == "" {
			jobURL = cardAttr(card, "a", "href")
		}
		if title == "" || jobURL == "" {
			return true
		}

		postings = append(postings, models.RawPosting{
			Source:       a.Name(),
			Title:        title,
			Company:      cardText(card, ".job-search-card__subtitle"),
			LocationText: cardText(card, ".job-search-card__location"),
			URL:          utils.CanonicalLinkedInJobURL(absoluteURL(linkedinBaseURL, jobURL)),
			PostedText:   cardText(card, ".job-search-card__listdate, time"),
		})
		return len(postings) < a.cfg.Scraper.MaxPostings
	})

	a.logger.Debug("LinkedIn search complete", map[string]interface{}{
		"count": len(postings),
	})
	return postings, nil
}

// FetchDetails loads the posting page and pulls the description and any
// recruiter byline.
func (a *LinkedInAdapter) FetchDetails(ctx context.Context, jobURL string) (models.RawPosting, error) {
	var details models.RawPosting
	if err := a.ensureSession(ctx); err != nil {
		return details, err
	}
	if err := a.sess.Navigate(ctx, jobURL, a.cfg.Scraper.RequestTimeout); err != nil {
		return details, err
	}

	html, err := a.sess.HTML()
	if err != nil {
		return details, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return details, fmt.Errorf("linkedin details parse: %w", err)
	}

	details.Description = strings.TrimSpace(
		doc.Find(".jobs-box__html-content, .jobs-description-content__text, .show-more-less-html__markup").First().Text())
	return details, nil
}

// ExtractContactHints assembles the free text mined for contact candidates:
// the description plus the poster byline when the page exposes one.
func (a *LinkedInAdapter) ExtractContactHints(ctx context.Context, posting *models.RawPosting) (string, error) {
	hints := posting.Description

	if a.sess != nil {
		if html, err := a.sess.HTML(); err == nil {
			if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
				if poster := strings.TrimSpace(doc.Find(".jobs-poster__name").First().Text()); poster != "" {
					hints = "Recruiter: " + poster + "\n" + hints
				}
			}
		}
	}

	return hints, nil
}

// Close releases the browser session
func (a *LinkedInAdapter) Close() error {
	if a.sess != nil {
		a.sess.Release()
		a.sess = nil
	}
	return nil
}
