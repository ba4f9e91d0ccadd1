// Package browser owns the Chrome instance. A Session wraps a chromedp
// browser context configured to look like an ordinary desktop browser and
// exposes the small set of page operations the scraper needs.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Config controls how the browser is launched.
type Config struct {
	// Headless runs Chrome without a window. Defaults to true via the
	// configuration layer; some sites behave better headful.
	Headless bool
	// UserAgent overrides the reported user agent.
	UserAgent string
	// ExecPath points at a specific Chrome binary. Empty means autodetect.
	ExecPath string
	// ProxyURL routes browser traffic through a proxy when set.
	ProxyURL string
	// NavigationTimeout bounds each page load.
	NavigationTimeout time.Duration
}

// Cookie is a browser cookie to install before navigation, typically a
// session cookie for an authenticated scrape.
type Cookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
}

// Session is a live browser. It is not safe for concurrent use; run one
// session per worker.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	cfg         Config
}

// NewSession launches Chrome and prepares it for capture work: network
// events enabled, automation fingerprints masked.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = 30 * time.Second
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.Flag("lang", "en-US"),
		chromedp.UserAgent(cfg.UserAgent),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.ProxyURL != "" {
		opts = append(opts, chromedp.ProxyServer(cfg.ProxyURL))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
	)
	if err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	log.Info().Bool("headless", cfg.Headless).Msg("Browser session started")
	return &Session{ctx: browserCtx, cancel: cancel, allocCancel: allocCancel, cfg: cfg}, nil
}

// Context returns the chromedp target context, used to attach network taps.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Navigate loads a URL and waits for the document body, bounded by the
// configured navigation timeout.
func (s *Session) Navigate(ctx context.Context, url string) error {
	tctx, cancel := s.bounded(ctx, s.cfg.NavigationTimeout)
	defer cancel()

	log.Debug().Str("url", url).Msg("Navigating")
	if err := chromedp.Run(tctx, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Evaluate runs a JavaScript expression in the page, bounded by the
// configured navigation timeout. A nil res discards the result.
func (s *Session) Evaluate(ctx context.Context, js string, res any) error {
	tctx, cancel := s.bounded(ctx, s.cfg.NavigationTimeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.Evaluate(js, res)); err != nil {
		return fmt.Errorf("failed to evaluate script: %w", err)
	}
	return nil
}

// Click clicks the first element matching the CSS selector, waiting up to
// the given timeout for it to exist.
func (s *Session) Click(ctx context.Context, selector string, timeout time.Duration) error {
	tctx, cancel := s.bounded(ctx, timeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to click %q: %w", selector, err)
	}
	return nil
}

// WaitVisible blocks until the selector is visible or the timeout elapses.
func (s *Session) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	tctx, cancel := s.bounded(ctx, timeout)
	defer cancel()

	if err := chromedp.Run(tctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("element %q did not appear: %w", selector, err)
	}
	return nil
}

// PageSource returns the current document's outer HTML.
func (s *Session) PageSource(ctx context.Context) (string, error) {
	tctx, cancel := s.bounded(ctx, s.cfg.NavigationTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(tctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read page source: %w", err)
	}
	return html, nil
}

// SetCookies installs cookies into the browser before navigation.
func (s *Session) SetCookies(ctx context.Context, cookies []Cookie) error {
	if len(cookies) == 0 {
		return nil
	}
	actions := make([]chromedp.Action, 0, len(cookies))
	for _, c := range cookies {
		domain := c.Domain
		if domain == "" {
			domain = ".tiktok.com"
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		actions = append(actions, network.SetCookie(c.Name, c.Value).WithDomain(domain).WithPath(path))
	}
	if err := chromedp.Run(s.ctx, actions...); err != nil {
		return fmt.Errorf("failed to set cookies: %w", err)
	}
	log.Debug().Int("count", len(cookies)).Msg("Cookies installed")
	return nil
}

// Close shuts the browser down. Safe to call more than once.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}

// bounded derives a timeout context from the session context that is also
// cancelled when the caller's context is.
func (s *Session) bounded(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	tctx, cancel := context.WithTimeout(s.ctx, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return tctx, func() {
		stop()
		cancel()
	}
}
