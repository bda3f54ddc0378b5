package session

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
)

// BrowserManager owns the shared launcher and the pool of browser processes
// that adapter sessions draw pages from.
type BrowserManager struct {
	config       *config.Config
	launcher     *launcher.Launcher
	browsers     []*rod.Browser
	mu           sync.RWMutex
	maxInstances int
	logger       types.Logger
}

// BrowserSession is one adapter's scoped page. Release must run on every
// exit path so the pool never leaks pages.
type BrowserSession struct {
	Browser   *rod.Browser
	Page      *rod.Page
	manager   *BrowserManager
	createdAt time.Time
}

// NewBrowserManager creates a new browser manager
func NewBrowserManager(cfg *config.Config) *BrowserManager {
	logger := logging.GetGlobalLogger()

	l := launcher.New().
		Headless(cfg.Scraper.HeadlessMode).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-web-security").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		// Required in Docker: no GPU context, limited /dev/shm
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	// Use system-installed Chrome/Chromium instead of downloading
	if chromePath := getSystemChromePath(); chromePath != "" {
		l = l.Bin(chromePath)
		logger.Info("Using system Chrome browser", map[string]interface{}{
			"chrome_path": chromePath,
		})
	} else {
		logger.Warn("System Chrome not found, Rod will download browser", map[string]interface{}{})
	}

	if cfg.Scraper.UserAgent != "" {
		l = l.Set("user-agent", cfg.Scraper.UserAgent)
	}

	return &BrowserManager{
		config:       cfg,
		launcher:     l,
		browsers:     make([]*rod.Browser, 0),
		maxInstances: cfg.Workers.PoolSize,
		logger:       logger,
	}
}

// Acquire returns a session with a fresh stealth page, reusing a healthy
// browser process when one exists.
func (bm *BrowserManager) Acquire(ctx context.Context) (*BrowserSession, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	for _, browser := range bm.browsers {
		if bm.isBrowserHealthy(browser) {
			page, err := bm.createStealthPage(browser)
			if err != nil {
				bm.logger.Warn("Failed to create page from existing browser", map[string]interface{}{
					"error": err.Error(),
				})
				continue
			}

			return &BrowserSession{
				Browser:   browser,
				Page:      page,
				manager:   bm,
				createdAt: time.Now(),
			}, nil
		}
	}

	if len(bm.browsers) < bm.maxInstances {
		browser, err := bm.createBrowser(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create browser: %w", err)
		}

		page, err := bm.createStealthPage(browser)
		if err != nil {
			browser.MustClose()
			return nil, fmt.Errorf("failed to create stealth page: %w", err)
		}

		bm.browsers = append(bm.browsers, browser)

		return &BrowserSession{
			Browser:   browser,
			Page:      page,
			manager:   bm,
			createdAt: time.Now(),
		}, nil
	}

	return nil, fmt.Errorf("browser pool exhausted, max instances: %d", bm.maxInstances)
}

// createBrowser creates a new browser instance
func (bm *BrowserManager) createBrowser(ctx context.Context) (*rod.Browser, error) {
	url, err := bm.launcher.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)

	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	bm.logger.Info("New browser instance created", map[string]interface{}{})
	return browser, nil
}

// createStealthPage creates a new page with stealth mode enabled
func (bm *BrowserManager) createStealthPage(browser *rod.Browser) (*rod.Page, error) {
	page, err := stealth.Page(browser)
	if err != nil {
		return nil, fmt.Errorf("failed to create stealth page: %w", err)
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		bm.logger.Warn("Failed to set viewport", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if bm.config.Scraper.UserAgent != "" {
		err = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: bm.config.Scraper.UserAgent,
		})
		if err != nil {
			bm.logger.Warn("Failed to set user agent", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	headers := map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.9",
		"Accept-Encoding":           "gzip, deflate, br",
		"Cache-Control":             "no-cache",
		"Pragma":                    "no-cache",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
		"Upgrade-Insecure-Requests": "1",
	}

	for name, value := range headers {
		_, err := page.SetExtraHeaders([]string{name, value})
		if err != nil {
			bm.logger.Debug("Failed to set header", map[string]interface{}{
				"error":  err.Error(),
				"header": name,
			})
		}
	}

	// Mask the automation markers stealth doesn't cover
	err = rod.Try(func() {
		page.MustEval(`() => {
			Object.defineProperty(navigator, 'webdriver', {
				get: () => undefined,
			});
			Object.defineProperty(navigator, 'plugins', {
				get: () => [1, 2, 3, 4, 5],
			});
			Object.defineProperty(navigator, 'languages', {
				get: () => ['en-US', 'en'],
			});
			window.chrome = {
				runtime: {},
			};
		}`)
	})
	if err != nil {
		bm.logger.Warn("Failed to inject stealth JavaScript", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return page, nil
}

// Release closes the session's page and returns its browser to the pool
func (s *BrowserSession) Release() {
	if s.Page != nil {
		_ = rod.Try(func() {
			s.Page.MustClose()
		})
	}
	s.manager.logger.Debug("Browser session released")
}

// Navigate navigates the page to the specified URL with timeout
func (s *BrowserSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := rod.Try(func() {
		s.Page.Context(navCtx).MustNavigate(url).MustWaitLoad()
	})

	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	s.manager.logger.Debug("Successfully navigated to URL", map[string]interface{}{
		"url": url,
	})
	return nil
}

// HTML returns the full HTML content of the current page
func (s *BrowserSession) HTML() (string, error) {
	html, err := s.Page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get page HTML: %w", err)
	}
	return html, nil
}

// WaitForSelector waits for an element to appear on the page
func (s *BrowserSession) WaitForSelector(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := rod.Try(func() {
		s.Page.Context(ctx).MustElement(selector)
	})

	if err != nil {
		return fmt.Errorf("element with selector '%s' not found within timeout: %w", selector, err)
	}

	return nil
}

// Type fills the element matched by selector with the given text
func (s *BrowserSession) Type(selector, text string) error {
	err := rod.Try(func() {
		s.Page.MustElement(selector).MustInput(text)
	})
	if err != nil {
		return fmt.Errorf("failed to type into '%s': %w", selector, err)
	}
	return nil
}

// Click clicks the element matched by selector
func (s *BrowserSession) Click(selector string) error {
	err := rod.Try(func() {
		s.Page.MustElement(selector).MustClick()
	})
	if err != nil {
		return fmt.Errorf("failed to click '%s': %w", selector, err)
	}
	return nil
}

// isBrowserHealthy checks if a browser instance is still healthy
func (bm *BrowserManager) isBrowserHealthy(browser *rod.Browser) bool {
	err := rod.Try(func() {
		browser.MustPages()
	})
	return err == nil
}

// Cleanup closes all browser instances and launchers
func (bm *BrowserManager) Cleanup() {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	for _, browser := range bm.browsers {
		if bm.isBrowserHealthy(browser) {
			browser.MustClose()
		}
	}

	bm.browsers = nil
	bm.launcher.Cleanup()
	bm.logger.Info("Browser manager cleanup completed")
}

// IsHealthy checks if the browser manager is healthy
func (bm *BrowserManager) IsHealthy() bool {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	for _, browser := range bm.browsers {
		if !bm.isBrowserHealthy(browser) {
			return false
		}
	}
	return true
}

// getSystemChromePath finds the system-installed Chrome/Chromium browser
func getSystemChromePath() string {
	if chromeBin := os.Getenv("CHROME_BIN"); chromeBin != "" {
		if _, err := os.Stat(chromeBin); err == nil {
			return chromeBin
		}
	}

	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	commonPaths := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/opt/google/chrome/chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe",
		"C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe",
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
