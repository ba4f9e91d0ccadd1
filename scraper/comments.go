package scraper

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/tiktok-scraper/capture"
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
	"github.com/researchaccelerator-hub/tiktok-scraper/parse"
)

// expandRepliesScript clicks every visible "view replies" toggle so the
// reply sub-endpoint fires and replies join the capture stream.
const expandRepliesScript = `
document.querySelectorAll('[data-e2e="view-more-1"], [data-e2e="view-more-2"]')
	.forEach((el) => el.click());
true;
`

// VideoComments captures a video's comments, expanding reply toggles while
// scrolling, and groups the flat capture into threads. Replies whose parent
// was never captured are reported as orphans rather than dropped.
func (s *Scraper) VideoComments(ctx context.Context, videoURL string) (*model.CommentResult, error) {
	cfg := s.scrollConfig()
	cfg.ExtraScript = expandRepliesScript

	pages, err := s.capture(ctx, videoURL, capture.CommentList, cfg, nil)
	if err != nil {
		return nil, err
	}

	comments := parse.Comments(pages)
	threads, orphans := parse.Threads(comments)

	log.Info().
		Str("url", videoURL).
		Int("comments", len(comments)).
		Int("threads", len(threads)).
		Int("orphans", len(orphans)).
		Msg("Video comments scraped")
	return &model.CommentResult{Threads: threads, Orphans: orphans, Total: len(comments)}, nil
}
