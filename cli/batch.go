package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/researchaccelerator-hub/tiktok-scraper/browser"
	"github.com/researchaccelerator-hub/tiktok-scraper/common"
	"github.com/researchaccelerator-hub/tiktok-scraper/ratelimit"
	"github.com/researchaccelerator-hub/tiktok-scraper/scraper"
	"github.com/researchaccelerator-hub/tiktok-scraper/state"
)

// seedFunc runs one scrape operation for one seed and returns the payload
// to persist.
type seedFunc func(ctx context.Context, s *scraper.Scraper, seed string) (any, error)

// runBatch processes the resolved seeds with up to Concurrency parallel
// browser sessions. Each seed gets a fresh session so one wedged page never
// poisons the rest of the run; the rate limiter is shared so the budget
// covers the whole batch. Progress is persisted per seed, making reruns
// with the same scrape ID resume where they stopped.
func runBatch(ctx context.Context, kind string, args []string, fn seedFunc) error {
	cfg := loadConfig()

	seeds, err := resolveSeeds(args)
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return fmt.Errorf("no seeds given: pass arguments or set --seed-file/--seed-url")
	}

	mgr, err := state.NewManager(cfg.StorageRoot, cfg.ScrapeID)
	if err != nil {
		return err
	}
	if err := mgr.SetSeeds(seeds); err != nil {
		return err
	}

	pending := mgr.Pending()
	log.Info().
		Str("scrape_id", cfg.ScrapeID).
		Str("kind", kind).
		Int("seeds", len(seeds)).
		Int("pending", len(pending)).
		Int("concurrency", cfg.Concurrency).
		Msg("Starting batch")

	limiter := ratelimit.New(ratelimit.Config{
		PerMinute: cfg.RequestsPerMinute,
		PerHour:   cfg.RequestsPerHour,
		Cooldown:  time.Duration(cfg.CooldownMinutes) * time.Minute,
	})

	cookies, err := loadCookies(cfg.CookiesFile)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for _, seed := range pending {
		seed := seed
		g.Go(func() error {
			if err := processSeed(gctx, cfg, limiter, cookies, mgr, kind, seed, fn); err != nil {
				log.Error().Err(err).Str("seed", seed).Msg("Seed failed")
				return mgr.MarkFailed(seed, err)
			}
			return mgr.MarkCompleted(seed)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	snap := mgr.Snapshot()
	failed := 0
	for _, outcome := range snap.Outcomes {
		if outcome.Status == "failed" {
			failed++
		}
	}
	log.Info().Int("completed", len(snap.Outcomes)-failed).Int("failed", failed).Str("dir", mgr.Dir()).Msg("Batch finished")
	return nil
}

func processSeed(ctx context.Context, cfg common.ScraperConfig, limiter *ratelimit.Limiter, cookies []browser.Cookie, mgr *state.Manager, kind, seed string, fn seedFunc) error {
	session, err := browser.NewSession(ctx, browser.Config{
		Headless:          cfg.Headless,
		UserAgent:         cfg.UserAgent,
		ExecPath:          cfg.ChromePath,
		ProxyURL:          cfg.ProxyURL,
		NavigationTimeout: cfg.NavigationTimeout,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.SetCookies(ctx, cookies); err != nil {
		return err
	}

	s, err := scraper.New(session, limiter, cfg)
	if err != nil {
		return err
	}

	payload, err := fn(ctx, s, seed)
	if err != nil {
		return err
	}

	_, err = mgr.SaveRecords(fmt.Sprintf("%s_%s", fileStem(seed), kind), payload)
	return err
}

// resolveSeeds merges positional arguments with --seed-file and --seed-url
// sources, preserving order and dropping duplicates.
func resolveSeeds(args []string) ([]string, error) {
	var seeds []string
	for _, arg := range args {
		seeds = append(seeds, strings.TrimSpace(arg))
	}

	if file := viper.GetString("seed-file"); file != "" {
		fromFile, err := common.ReadSeedsFromFile(file)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, fromFile...)
	}
	if url := viper.GetString("seed-url"); url != "" {
		file, err := common.DownloadSeedFile(url)
		if err != nil {
			return nil, err
		}
		fromURL, err := common.ReadSeedsFromFile(file)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, fromURL...)
	}

	seen := make(map[string]bool, len(seeds))
	unique := seeds[:0]
	for _, seed := range seeds {
		if seed == "" || seen[seed] {
			continue
		}
		seen[seed] = true
		unique = append(unique, seed)
	}
	return unique, nil
}

// loadCookies reads a JSON cookie export, as produced by common browser
// extensions.
func loadCookies(path string) ([]browser.Cookie, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies file: %w", err)
	}
	var cookies []browser.Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("failed to parse cookies file: %w", err)
	}
	return cookies, nil
}

// fileStem turns a seed into a safe file name fragment.
func fileStem(seed string) string {
	stem := strings.TrimSpace(seed)
	switch {
	case strings.Contains(stem, "/video/"):
		stem = "video_" + pathSegmentStem(stem, "/video/")
	case strings.Contains(stem, "/music/"):
		stem = "sound_" + pathSegmentStem(stem, "/music/")
	case strings.Contains(stem, "/tag/"):
		stem = "tag_" + pathSegmentStem(stem, "/tag/")
	default:
		stem = common.CanonicalUsername(strings.TrimPrefix(stem, "#"))
	}
	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func pathSegmentStem(url, marker string) string {
	id := url[strings.Index(url, marker)+len(marker):]
	if j := strings.IndexAny(id, "/?"); j >= 0 {
		id = id[:j]
	}
	return id
}
