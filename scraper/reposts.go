package scraper

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/tiktok-scraper/capture"
	"github.com/researchaccelerator-hub/tiktok-scraper/common"
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
	"github.com/researchaccelerator-hub/tiktok-scraper/parse"
)

const repostTabSelector = `[data-e2e="repost-tab"]`

// UserReposts captures the repost tab of a user's profile. Accounts that
// hide or lack the repost tab yield an empty slice.
func (s *Scraper) UserReposts(ctx context.Context, username string) ([]model.VideoRecord, error) {
	username = common.CanonicalUsername(username)

	openTab := func(ctx context.Context) error {
		if err := s.session.Click(ctx, repostTabSelector, 10*time.Second); err != nil {
			log.Info().Str("username", username).Err(err).Msg("Repost tab not available")
		}
		return nil
	}

	pages, err := s.capture(ctx, profileURL(username), capture.RepostItemList, s.scrollConfig(), openTab)
	if err != nil {
		return nil, err
	}

	records := parse.Videos(pages)
	log.Info().Str("username", username).Int("reposts", len(records)).Msg("User reposts scraped")
	return records, nil
}
