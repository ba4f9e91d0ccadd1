// Package parse turns raw captured JSON items into the flat record shapes
// the rest of the project consumes. Every function here is pure: no I/O, no
// shared state, and identical input always yields identical output. Missing
// source fields map to zero values, never to errors, because TikTok's
// response shape is unversioned and partial items are expected.
package parse

import (
	"time"

	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// timeLayout is the fixed format used for all formatted timestamps.
const timeLayout = "2006-01-02 15:04:05"

// formatUnix renders a UNIX timestamp, or "" for the zero timestamp.
func formatUnix(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(timeLayout)
}

// Flatten concatenates the item arrays of all captured pages in capture
// order. Duplicate pages contribute their items again; deduplication is the
// caller's decision, not this layer's.
func Flatten(pages []model.CapturedPage) []model.RawItem {
	var items []model.RawItem
	for _, page := range pages {
		items = append(items, page.Items...)
	}
	return items
}

// Videos flattens post-list pages into video records.
func Videos(pages []model.CapturedPage) []model.VideoRecord {
	items := Flatten(pages)
	records := make([]model.VideoRecord, 0, len(items))
	for _, item := range items {
		records = append(records, Video(item))
	}
	return records
}

// Comments flattens comment-list pages (including reply pages) into
// comment records.
func Comments(pages []model.CapturedPage) []model.CommentRecord {
	items := Flatten(pages)
	records := make([]model.CommentRecord, 0, len(items))
	for _, item := range items {
		records = append(records, Comment(item))
	}
	return records
}

// UserList flattens user-list pages into user-list records for the given
// scene.
func UserList(pages []model.CapturedPage, scene model.FollowScene) []model.UserListRecord {
	items := Flatten(pages)
	records := make([]model.UserListRecord, 0, len(items))
	for _, item := range items {
		records = append(records, UserListEntry(item, scene))
	}
	return records
}
