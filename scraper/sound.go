package scraper

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/tiktok-scraper/capture"
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
	"github.com/researchaccelerator-hub/tiktok-scraper/parse"
)

// soundURLFromSeed accepts either a full sound-page URL or a bare sound ID.
func soundURLFromSeed(seed string) string {
	seed = strings.TrimSpace(seed)
	if strings.Contains(seed, "tiktok.com") {
		return seed
	}
	return "https://www.tiktok.com/music/original-sound-" + seed
}

// SoundInfo reads a sound's metadata from its page's embedded state.
func (s *Scraper) SoundInfo(ctx context.Context, seed string) (*model.SoundRecord, error) {
	url := soundURLFromSeed(seed)

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := s.session.Navigate(ctx, url); err != nil {
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

	music, stats, ok := st.soundInfo()
	if !ok {
		s.limiter.RecordThrottled()
		return nil, &InvalidResponseError{
			Message:    "sound page carried no music state for " + url,
			PageSource: html,
		}
	}

	record := parse.Sound(music, stats)
	log.Info().Str("sound_id", record.ID).Int64("videos", record.VideoCount).Msg("Sound info scraped")
	return record, nil
}

// SoundVideos captures the video grid of a sound page.
func (s *Scraper) SoundVideos(ctx context.Context, seed string) ([]model.VideoRecord, error) {
	pages, err := s.capture(ctx, soundURLFromSeed(seed), capture.MusicItemList, s.scrollConfig(), nil)
	if err != nil {
		return nil, err
	}

	records := parse.Videos(pages)
	log.Info().Str("seed", seed).Int("videos", len(records)).Msg("Sound videos scraped")
	return records, nil
}
