// Package scraper ties the browser session, the network capture machinery,
// and the flattening pass together into per-target operations: a user's
// videos, reposts, follow lists, profile, and a video's comment threads.
package scraper

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/tiktok-scraper/browser"
	"github.com/researchaccelerator-hub/tiktok-scraper/capture"
	"github.com/researchaccelerator-hub/tiktok-scraper/common"
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
	"github.com/researchaccelerator-hub/tiktok-scraper/ratelimit"
)

const profileCacheSize = 128

// Scraper runs scrape operations over one browser session. Not safe for
// concurrent use; batch runs create one scraper per worker.
type Scraper struct {
	session  *browser.Session
	limiter  *ratelimit.Limiter
	cfg      common.ScraperConfig
	profiles *lru.Cache[string, *model.UserProfile]
}

// New builds a scraper over a live session.
func New(session *browser.Session, limiter *ratelimit.Limiter, cfg common.ScraperConfig) (*Scraper, error) {
	profiles, err := lru.New[string, *model.UserProfile](profileCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile cache: %w", err)
	}
	return &Scraper{session: session, limiter: limiter, cfg: cfg, profiles: profiles}, nil
}

func profileURL(username string) string {
	return "https://www.tiktok.com/@" + username
}

// scrollConfig derives the scroll settings for one capture from the shared
// configuration.
func (s *Scraper) scrollConfig() capture.ScrollConfig {
	return capture.ScrollConfig{
		MaxPages:    s.cfg.MaxPages,
		ScrollPause: s.cfg.ScrollPause(),
		MaxStale:    s.cfg.MaxStale,
	}
}

// capture attaches a tap for the endpoint, navigates, and drives the scroll
// loop until a stop condition fires. The tap must be listening before
// navigation because the first page of results loads with the document.
func (s *Scraper) capture(ctx context.Context, url string, endpoint capture.Endpoint, cfg capture.ScrollConfig, setup func(context.Context) error) ([]model.CapturedPage, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	tap := capture.NewTap(endpoint)
	tap.Attach(s.session.Context())
	col := capture.NewCollector(tap.Pages())

	if err := s.session.Navigate(ctx, url); err != nil {
		return nil, err
	}
	if setup != nil {
		if err := setup(ctx); err != nil {
			return nil, err
		}
	}

	driver := capture.NewScrollDriver(s.session, col, cfg)
	if err := driver.Run(ctx); err != nil {
		return nil, err
	}

	pages := col.Pages()
	log.Info().
		Str("endpoint", endpoint.Name).
		Str("url", url).
		Int("pages", len(pages)).
		Msg("Capture finished")
	return pages, nil
}
