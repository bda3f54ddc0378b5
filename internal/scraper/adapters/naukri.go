package adapters

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
	"jobscout/internal/scraper/session"
	"jobscout/pkg/models"
)

const naukriBaseURL = "https://www.naukri.com"

// NaukriAdapter scrapes naukri.com search results through a stealth browser
// session. No login is required.
type NaukriAdapter struct {
	cfg      *config.Config
	browsers *session.BrowserManager
	sess     *session.BrowserSession
	logger   types.Logger
}

// NewNaukriAdapter creates a session-scoped naukri adapter
func NewNaukriAdapter(cfg *config.Config, browsers *session.BrowserManager) *NaukriAdapter {
	return &NaukriAdapter{
		cfg:      cfg,
		browsers: browsers,
		logger:   logging.GetGlobalLogger(),
	}
}

func (a *NaukriAdapter) Name() string {
	return "naukri"
}

func (a *NaukriAdapter) ensureSession(ctx context.Context) error {
	if a.sess != nil {
		return nil
	}
	sess, err := a.browsers.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("naukri session: %w", err)
	}
	a.sess = sess
	return nil
}

// ListPostings runs a keyword search filtered by posting age
func (a *NaukriAdapter) ListPostings(ctx context.Context, keywords []string, timeWindow string) ([]models.RawPosting, error) {
	if err := a.ensureSession(ctx); err != nil {
		return nil, err
	}

	query := searchQuery(keywords)
	slug := strings.ReplaceAll(strings.ToLower(query), " ", "-")
	searchURL := fmt.Sprintf("%s/%s-jobs?k=%s&jobAge=%s",
		naukriBaseURL, url.PathEscape(slug), url.QueryEscape(query), timeWindowDays(timeWindow))

	if err := a.sess.Navigate(ctx, searchURL, a.cfg.Scraper.RequestTimeout); err != nil {
		return nil, err
	}
	_ = a.sess.WaitForSelector(".jobTuple, .srp-jobtuple-wrapper", a.cfg.Scraper.RequestTimeout)

	html, err := a.sess.HTML()
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("naukri results parse: %w", err)
	}

	var postings []models.RawPosting
	doc.Find(".jobTuple, .srp-jobtuple-wrapper").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := cardText(card, ".title")
		jobURL := cardAttr(card, ".title a, a.title", "href")
		if jobURL == "" {
			jobURL = cardAttr(card, "a", "href")
		}
		if title == "" || jobURL == "" {
			return true
		}

		var skills []string
		card.Find(".skill, .tag-li").Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				skills = append(skills, t)
			}
		})

		postings = append(postings, models.RawPosting{
			Source:       a.Name(),
			Title:        title,
			Company:      cardText(card, ".subTitle, .comp-name"),
			LocationText: cardText(card, ".location, .locWdth"),
			URL:          absoluteURL(naukriBaseURL, jobURL),
			PostedText:   cardText(card, ".postedDate, .job-post-day"),
			SalaryText:   cardText(card, ".salary, .sal-wrap"),
			Skills:       skills,
		})
		return len(postings) < a.cfg.Scraper.MaxPostings
	})

	a.logger.Debug("Naukri search complete", map[string]interface{}{
		"count": len(postings),
	})
	return postings, nil
}

// FetchDetails loads the posting page for the full description
func (a *NaukriAdapter) FetchDetails(ctx context.Context, jobURL string) (models.RawPosting, error) {
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
		return details, fmt.Errorf("naukri details parse: %w", err)
	}

	details.Description = strings.TrimSpace(
		doc.Find(".jobDescriptionSection, .jdSection, .styles_JDC__dang-inner-html__h0K4t").First().Text())
	details.SalaryText = strings.TrimSpace(doc.Find(".salary").First().Text())
	return details, nil
}

// ExtractContactHints returns the description plus the HR contact block when
// the posting exposes one.
func (a *NaukriAdapter) ExtractContactHints(ctx context.Context, posting *models.RawPosting) (string, error) {
	hints := posting.Description

	if a.sess != nil {
		if html, err := a.sess.HTML(); err == nil {
			if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
				if hr := strings.TrimSpace(doc.Find(".hrContact, .recruiterContact").First().Text()); hr != "" {
					hints = hr + "\n" + hints
				}
			}
		}
	}

	return hints, nil
}

// Close releases the browser session
func (a *NaukriAdapter) Close() error {
	if a.sess != nil {
		a.sess.Release()
		a.sess = nil
	}
	return nil
}
