package scraper

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/tiktok-scraper/capture"
	"github.com/researchaccelerator-hub/tiktok-scraper/common"
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
	"github.com/researchaccelerator-hub/tiktok-scraper/parse"
)

// UserVideos captures a user's video grid and returns the flattened
// records. A private or empty account yields an empty slice, not an error.
func (s *Scraper) UserVideos(ctx context.Context, username string) ([]model.VideoRecord, error) {
	username = common.CanonicalUsername(username)

	pages, err := s.capture(ctx, profileURL(username), capture.PostItemList, s.scrollConfig(), nil)
	if err != nil {
		return nil, err
	}

	records := parse.Videos(pages)
	log.Info().Str("username", username).Int("videos", len(records)).Msg("User videos scraped")
	return records, nil
}
