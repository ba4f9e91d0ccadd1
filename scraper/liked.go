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

const likedTabSelector = `[data-e2e="liked-tab"]`

// UserLiked captures the liked tab of a user's profile. The list is only
// populated for accounts with public likes; private lists yield an empty
// slice.
func (s *Scraper) UserLiked(ctx context.Context, username string) ([]model.VideoRecord, error) {
	username = common.CanonicalUsername(username)

	openTab := func(ctx context.Context) error {
		if err := s.session.Click(ctx, likedTabSelector, 10*time.Second); err != nil {
			log.Info().Str("username", username).Err(err).Msg("Liked tab not available")
		}
		return nil
	}

	pages, err := s.capture(ctx, profileURL(username), capture.FavoriteItemList, s.scrollConfig(), openTab)
	if err != nil {
		return nil, err
	}

	records := parse.Videos(pages)
	log.Info().Str("username", username).Int("liked", len(records)).Msg("User liked videos scraped")
	return records, nil
}
