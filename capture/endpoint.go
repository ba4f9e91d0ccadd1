// Package capture listens to the browser's network traffic and turns the
// JSON responses of known list endpoints into structured pages. It pairs a
// response tap (fed by DevTools protocol events) with a scroll driver that
// keeps triggering the next page until a stop condition is met.
package capture

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// errStatus marks responses the API itself rejected. They are routine
// during a capture and logged quieter than transport or decode failures.
var errStatus = errors.New("non-zero response status")

// Endpoint describes one paginated list API. Responses are matched by URL
// path substring plus an optional query fragment, and the per-endpoint key
// names map the response body onto a CapturedPage.
type Endpoint struct {
	// Name identifies the endpoint in logs and on captured pages.
	Name string
	// PathSubstring is matched against the full request URL. The comment
	// endpoint deliberately also matches its reply sub-endpoint so replies
	// land in the same stream as their parents.
	PathSubstring string
	// Query, when non-empty, must also appear in the request URL. Used to
	// tell the following list from the followers list.
	Query string
	// ItemsKey names the JSON array holding the page's items.
	ItemsKey string
	// MoreKey names the boolean (or 0/1) flag signalling further pages.
	MoreKey string
	// CursorKey names the pagination cursor field.
	CursorKey string
}

// Matches reports whether a request URL belongs to this endpoint.
func (e Endpoint) Matches(url string) bool {
	if !strings.Contains(url, e.PathSubstring) {
		return false
	}
	return e.Query == "" || strings.Contains(url, e.Query)
}

// CommentList matches both /api/comment/list/ and /api/comment/list/reply/,
// so expanded replies are captured alongside top-level comments.
var CommentList = Endpoint{
	Name:          "comments",
	PathSubstring: "/api/comment/list/",
	ItemsKey:      "comments",
	MoreKey:       "has_more",
	CursorKey:     "cursor",
}

// PostItemList matches a profile's video grid.
var PostItemList = Endpoint{
	Name:          "videos",
	PathSubstring: "/api/post/item_list/",
	ItemsKey:      "itemList",
	MoreKey:       "hasMore",
	CursorKey:     "cursor",
}

// RepostItemList matches a profile's repost tab.
var RepostItemList = Endpoint{
	Name:          "reposts",
	PathSubstring: "/api/repost/item_list/",
	ItemsKey:      "itemList",
	MoreKey:       "hasMore",
	CursorKey:     "cursor",
}

// FavoriteItemList matches a profile's liked tab. Only public like lists
// produce traffic.
var FavoriteItemList = Endpoint{
	Name:          "liked",
	PathSubstring: "/api/favorite/item_list/",
	ItemsKey:      "itemList",
	MoreKey:       "hasMore",
	CursorKey:     "cursor",
}

// MusicItemList matches the video grid of a sound page.
var MusicItemList = Endpoint{
	Name:          "sound_videos",
	PathSubstring: "/api/music/item_list/",
	ItemsKey:      "itemList",
	MoreKey:       "hasMore",
	CursorKey:     "cursor",
}

// ChallengeItemList matches the video grid of a tag page.
var ChallengeItemList = Endpoint{
	Name:          "hashtag_videos",
	PathSubstring: "/api/challenge/item_list/",
	ItemsKey:      "itemList",
	MoreKey:       "hasMore",
	CursorKey:     "cursor",
}

// UserListEndpoint matches the follow-relationship list for a scene.
func UserListEndpoint(scene model.FollowScene) Endpoint {
	return Endpoint{
		Name:          scene.String(),
		PathSubstring: "/api/user/list/",
		Query:         fmt.Sprintf("scene=%d", int(scene)),
		ItemsKey:      "userList",
		MoreKey:       "hasMore",
		CursorKey:     "minCursor",
	}
}

// decodePage parses a captured response body into a page. Bodies with a
// non-zero status code are rejected; an absent status field counts as
// success.
func decodePage(endpoint Endpoint, seq int, body []byte) (model.CapturedPage, error) {
	var raw model.RawItem
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.CapturedPage{}, fmt.Errorf("failed to decode %s response: %w", endpoint.Name, err)
	}
	if code := statusCode(raw); code != 0 {
		return model.CapturedPage{}, fmt.Errorf("%s response returned status %d: %w", endpoint.Name, code, errStatus)
	}
	return model.CapturedPage{
		Endpoint: endpoint.Name,
		Seq:      seq,
		Items:    raw.List(endpoint.ItemsKey),
		HasMore:  raw.Bool(endpoint.MoreKey),
		Cursor:   raw.String(endpoint.CursorKey),
	}, nil
}

// statusCode reads the response status under either of its two spellings.
func statusCode(raw model.RawItem) int64 {
	if raw.Has("status_code") {
		return raw.Int("status_code")
	}
	return raw.Int("statusCode")
}
