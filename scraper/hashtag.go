package scraper

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/tiktok-scraper/capture"
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
	"github.com/researchaccelerator-hub/tiktok-scraper/parse"
)

// hashtagNameFromSeed normalizes a tag seed: a leading '#' is stripped and
// tag URLs are reduced to their name segment.
func hashtagNameFromSeed(seed string) string {
	name := strings.TrimSpace(seed)
	const marker = "/tag/"
	if i := strings.Index(name, marker); i >= 0 {
		name = name[i+len(marker):]
		if j := strings.IndexAny(name, "/?"); j >= 0 {
			name = name[:j]
		}
	}
	return strings.TrimPrefix(name, "#")
}

func hashtagURL(name string) string {
	return "https://www.tiktok.com/tag/" + name
}

// HashtagInfo reads a hashtag's metadata from its page's embedded state.
func (s *Scraper) HashtagInfo(ctx context.Context, seed string) (*model.HashtagRecord, error) {
	name := hashtagNameFromSeed(seed)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := s.session.Navigate(ctx, hashtagURL(name)); err != nil {
		return nil, err
	}

	html, err := s.session.PageSource(ctx)
	if err != nil {
		return nil, err
	}
	st, err := parsePageState(html)
	if err != nil {
		return nil, err
	}

	challenge, stats, ok := st.hashtagInfo()
	if !ok {
		s.limiter.RecordThrottled()
		return nil, &InvalidResponseError{
			Message:    "tag page carried no challenge state for #" + name,
			PageSource: html,
		}
	}

	record := parse.Hashtag(challenge, stats)
	log.Info().Str("hashtag", record.Name).Int64("views", record.ViewCount).Msg("Hashtag info scraped")
	return record, nil
}

// HashtagVideos captures the video grid of a tag page.
func (s *Scraper) HashtagVideos(ctx context.Context, seed string) ([]model.VideoRecord, error) {
	name := hashtagNameFromSeed(seed)

	pages, err := s.capture(ctx, hashtagURL(name), capture.ChallengeItemList, s.scrollConfig(), nil)
	if err != nil {
		return nil, err
	}

	records := parse.Videos(pages)
	log.Info().Str("hashtag", name).Int("videos", len(records)).Msg("Hashtag videos scraped")
	return records, nil
}
