package scraper

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/tiktok-scraper/model"
	"github.com/researchaccelerator-hub/tiktok-scraper/parse"
)

// videoIDFromURL pulls the numeric ID out of a /video/<id> URL.
func videoIDFromURL(url string) string {
	const marker = "/video/"
	i := strings.Index(url, marker)
	if i < 0 {
		return ""
	}
	id := url[i+len(marker):]
	if j := strings.IndexAny(id, "/?"); j >= 0 {
		id = id[:j]
	}
	return id
}

// VideoInfo reads a single video's metadata from its detail page's
// embedded state.
func (s *Scraper) VideoInfo(ctx context.Context, videoURL string) (*model.VideoRecord, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := s.session.Navigate(ctx, videoURL); err != nil {
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

	item, ok := st.videoItem(videoIDFromURL(videoURL))
	if !ok {
		s.limiter.RecordThrottled()
		return nil, &InvalidResponseError{
			Message:    "video page carried no item state for " + videoURL,
			PageSource: html,
		}
	}

	record := parse.Video(item)
	log.Info().Str("video_id", record.ID).Int64("plays", record.PlayCount).Msg("Video info scraped")
	return &record, nil
}
