package parse

import (
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// Sound flattens a music object plus its stats object into a SoundRecord.
// The play URL has moved between keys across frontend releases, so three
// spellings are tried in order.
func Sound(music, stats model.RawItem) *model.SoundRecord {
	playURL := music.String("playUrl")
	if playURL == "" {
		playURL = music.String("play")
	}
	if playURL == "" {
		playURL = music.Map("original").String("playUrl")
	}
	return &model.SoundRecord{
		ID:         music.String("id"),
		Title:      music.String("title"),
		AuthorName: music.String("authorName"),
		PlayURL:    playURL,
		Duration:   music.Int("duration"),
		VideoCount: stats.Int("videoCount"),
	}
}

// Hashtag flattens a challenge object plus its stats object into a
// HashtagRecord. Name and description each have an alternate spelling.
func Hashtag(challenge, stats model.RawItem) *model.HashtagRecord {
	name := challenge.String("title")
	if name == "" {
		name = challenge.String("name")
	}
	description := challenge.String("desc")
	if description == "" {
		description = challenge.String("description")
	}
	return &model.HashtagRecord{
		ID:          challenge.String("id"),
		Name:        name,
		Title:       challenge.String("title"),
		Description: description,
		VideoCount:  stats.Int("videoCount"),
		ViewCount:   stats.Int("viewCount"),
		IsCommerce:  challenge.Bool("isCommerce"),
	}
}
