package adapters

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
	"jobscout/internal/scraper/session"
	"jobscout/pkg/models"
)

const twitterBaseURL = "https://twitter.com"

// jobKeywords qualify a tweet as a job posting; a tweet needs two hits, or
// one hit plus a contact marker.
var jobKeywords = []string{
	"hiring", "job", "opportunity", "career", "position", "role",
	"looking for", "seeking", "recruitment", "vacancy", "opening",
	"apply", "resume", "cv", "candidate", "interview", "salary",
	"experience", "skills", "requirements", "qualifications",
}

var (
	tweetTitleRe   = regexp.MustCompile(`(?i)(?:hiring|looking for|seeking)\s+(?:a\s+)?([A-Za-z ]+?)(?:\s+at|\s+for|\s+-|$)`)
	tweetRoleRe    = regexp.MustCompile(`(?i)(\w+ (?:developer|engineer|manager|analyst|designer|intern))`)
	tweetCompanyRe = regexp.MustCompile(`(?i)at\s+([A-Za-z ]+?)(?:\s+is|\s+are|\s+for|\s+-|$)`)
	tweetEmailRe   = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// TwitterAdapter mines job postings out of live-search tweets.
type TwitterAdapter struct {
	cfg      *config.Config
	browsers *session.BrowserManager
	sess     *session.BrowserSession
	logger   types.Logger
}

// NewTwitterAdapter creates a session-scoped twitter adapter
func NewTwitterAdapter(cfg *config.Config, browsers *session.BrowserManager) *TwitterAdapter {
	return &TwitterAdapter{
		cfg:      cfg,
		browsers: browsers,
		logger:   logging.GetGlobalLogger(),
	}
}

func (a *TwitterAdapter) Name() string {
	return "twitter"
}

func (a *TwitterAdapter) ensureSession(ctx context.Context) error {
	if a.sess != nil {
		return nil
	}
	sess, err := a.browsers.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("twitter session: %w", err)
	}
	a.sess = sess
	return nil
}

// ListPostings searches live tweets for the keywords plus hiring terms and
// keeps the ones that read like job postings.
func (a *TwitterAdapter) ListPostings(ctx context.Context, keywords []string, timeWindow string) ([]models.RawPosting, error) {
	if err := a.ensureSession(ctx); err != nil {
		return nil, err
	}

	terms := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			terms = append(terms, k)
		}
	}
	query := strings.Join(terms, " OR ") + " (job OR hiring OR opportunity OR career OR recruitment)"

	searchURL := fmt.Sprintf("%s/search?q=%s&f=live", twitterBaseURL, url.QueryEscape(query))
	if err := a.sess.Navigate(ctx, searchURL, a.cfg.Scraper.RequestTimeout); err != nil {
		return nil, err
	}
	_ = a.sess.WaitForSelector("[data-testid='tweet']", a.cfg.Scraper.RequestTimeout)

	html, err := a.sess.HTML()
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("twitter results parse: %w", err)
	}

	var postings []models.RawPosting
	doc.Find("[data-testid='tweet']").EachWithBreak(func(_ int, tweet *goquery.Selection) bool {
		content := strings.TrimSpace(tweet.Find("[data-testid='tweetText']").First().Text())
		if content == "" || !isJobRelated(content) {
			return true
		}

		userName := cardText(tweet, "[data-testid='User-Name'] span")
		tweetURL := cardAttr(tweet, "a:has(time)", "href")
		if tweetURL == "" {
			tweetURL = cardAttr(tweet, "a[href*='/status/']", "href")
		}
		if tweetURL == "" {
			return true
		}

		title := parseTweetTitle(content)
		company := parseTweetCompany(content, userName)

		postings = append(postings, models.RawPosting{
			Source:       a.Name(),
			Title:        title,
			Company:      company,
			Description:  content,
			URL:          absoluteURL(twitterBaseURL, tweetURL),
			PostedText:   cardAttr(tweet, "time", "datetime"),
			ContactHints: content,
		})
		return len(postings) < a.cfg.Scraper.MaxPostings
	})

	a.logger.Debug("Twitter search complete", map[string]interface{}{
		"count": len(postings),
	})
	return postings, nil
}

// FetchDetails loads the tweet thread; early replies often carry the apply
// email or phone.
func (a *TwitterAdapter) FetchDetails(ctx context.Context, tweetURL string) (models.RawPosting, error) {
	var details models.RawPosting
	if err := a.ensureSession(ctx); err != nil {
		return details, err
	}
	if err := a.sess.Navigate(ctx, tweetURL, a.cfg.Scraper.RequestTimeout); err != nil {
		return details, err
	}

	html, err := a.sess.HTML()
	if err != nil {
		return details, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return details, fmt.Errorf("twitter thread parse: %w", err)
	}

	var extra []string
	doc.Find("[data-testid='tweetText']").Each(func(i int, s *goquery.Selection) {
		if i == 0 || i > 2 {
			return
		}
		text := strings.TrimSpace(s.Text())
		lower := strings.ToLower(text)
		if strings.Contains(lower, "apply") || strings.Contains(lower, "email") ||
			strings.Contains(lower, "contact") || tweetEmailRe.MatchString(text) {
			extra = append(extra, text)
		}
	})
	if len(extra) > 0 {
		details.Description = strings.Join(extra, "\n")
	}
	return details, nil
}

// ExtractContactHints returns the tweet text plus the author as a recruiter
// candidate.
func (a *TwitterAdapter) ExtractContactHints(ctx context.Context, posting *models.RawPosting) (string, error) {
	hints := posting.Description
	if posting.Company != "" {
		hints = "Contact: " + posting.Company + "\n" + hints
	}
	return hints, nil
}

// Close releases the browser session
func (a *TwitterAdapter) Close() error {
	if a.sess != nil {
		a.sess.Release()
		a.sess = nil
	}
	return nil
}

func isJobRelated(content string) bool {
	lower := strings.ToLower(content)
	hits := 0
	for _, kw := range jobKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	hasContact := tweetEmailRe.MatchString(content) ||
		strings.Contains(lower, "dm") || strings.Contains(lower, "contact")
	return hits >= 2 || (hits >= 1 && hasContact)
}

func parseTweetTitle(content string) string {
	if m := tweetTitleRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := tweetRoleRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Job Opportunity"
}

func parseTweetCompany(content, fallback string) string {
	if m := tweetCompanyRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return fallback
}
