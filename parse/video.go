package parse

import (
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// Video flattens one post-list item into a VideoRecord. Engagement counts
// come from statsV2 when present (string-valued) and fall back to the
// legacy numeric stats object, matching how the web frontend populates them.
func Video(item model.RawItem) model.VideoRecord {
	stats := item.Map("statsV2")
	if stats == nil {
		stats = item.Map("stats")
	}

	author := item.Map("author")
	createTime := item.Int("createTime")

	record := model.VideoRecord{
		ID:                  item.String("id"),
		Description:         item.String("desc"),
		CreateTime:          createTime,
		CreateTimeFormatted: formatUnix(createTime),
		PlayCount:           stats.Int("playCount"),
		DiggCount:           stats.Int("diggCount"),
		CommentCount:        stats.Int("commentCount"),
		ShareCount:          stats.Int("shareCount"),
		CollectCount:        stats.Int("collectCount"),
		AuthorID:            author.String("id"),
		AuthorUsername:      author.String("uniqueId"),
		AuthorNickname:      author.String("nickname"),
		Music:               sound(item.Map("music")),
		Duration:            item.Map("video").Int("duration"),
		IsPinned:            item.Bool("isPinnedItem"),
	}

	for _, tag := range item.List("challenges") {
		record.Hashtags = append(record.Hashtags, model.HashtagInfo{
			ID:    tag.String("id"),
			Title: tag.String("title"),
		})
	}

	// Image-mode posts carry their attachments under imagePost.images.
	for _, img := range item.Map("imagePost").List("images") {
		url := ""
		if urls := img.Map("imageURL").Strings("urlList"); len(urls) > 0 {
			url = urls[0]
		}
		record.Images = append(record.Images, model.ImageInfo{
			URL:    url,
			Width:  img.Int("imageWidth"),
			Height: img.Int("imageHeight"),
		})
	}

	return record
}

func sound(music model.RawItem) model.SoundInfo {
	return model.SoundInfo{
		ID:         music.String("id"),
		Title:      music.String("title"),
		AuthorName: music.String("authorName"),
		Duration:   music.Int("duration"),
	}
}
