package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// The web app embeds its initial state in one of two script blobs. Newer
// pages carry __UNIVERSAL_DATA_FOR_REHYDRATION__; older ones carry
// SIGI_STATE. Profile and video detail pages are read from these blobs
// instead of an API response.
const (
	universalDataID = "__UNIVERSAL_DATA_FOR_REHYDRATION__"
	sigiStateID     = "SIGI_STATE"
)

// pageState gives keyed access to both embedded blobs of a document.
type pageState struct {
	universal model.RawItem
	sigi      model.RawItem
}

// parsePageState extracts the embedded state blobs from page HTML. Both
// blobs missing yields an empty state, not an error; callers decide whether
// that makes the page invalid.
func parsePageState(html string) (*pageState, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	st := &pageState{}
	if raw := doc.Find("script#" + universalDataID).Text(); raw != "" {
		if err := json.Unmarshal([]byte(raw), &st.universal); err != nil {
			st.universal = nil
		}
	}
	if raw := doc.Find("script#" + sigiStateID).Text(); raw != "" {
		if err := json.Unmarshal([]byte(raw), &st.sigi); err != nil {
			st.sigi = nil
		}
	}
	return st, nil
}

// userInfo returns the user and stats objects for a profile page, trying
// the rehydration blob first and falling back to SIGI_STATE. The rehydration
// blob carries its own status code; a non-zero value means the profile was
// not served.
func (st *pageState) userInfo(username string) (user, stats model.RawItem, ok bool) {
	detail := st.universal.Map("__DEFAULT_SCOPE__").Map("webapp.user-detail")
	if detail != nil && detail.Int("statusCode") == 0 {
		info := detail.Map("userInfo")
		if u := info.Map("user"); u.Has("id") {
			return u, info.Map("stats"), true
		}
	}

	users := st.sigi.Map("UserModule").Map("users")
	if u := users.Map(username); u.Has("id") {
		return u, st.sigi.Map("UserModule").Map("stats").Map(username), true
	}
	return nil, nil, false
}

// soundInfo returns the music and stats objects for a sound page.
func (st *pageState) soundInfo() (music, stats model.RawItem, ok bool) {
	detail := st.universal.Map("__DEFAULT_SCOPE__").Map("webapp.music-detail")
	if detail != nil && detail.Int("statusCode") == 0 {
		info := detail.Map("musicInfo")
		if m := info.Map("music"); m.Has("id") {
			return m, info.Map("stats"), true
		}
	}

	info := st.sigi.Map("MusicModule").Map("musicInfo")
	if m := info.Map("music"); m.Has("id") {
		return m, info.Map("stats"), true
	}
	return nil, nil, false
}

// hashtagInfo returns the challenge and stats objects for a tag page.
func (st *pageState) hashtagInfo() (challenge, stats model.RawItem, ok bool) {
	detail := st.universal.Map("__DEFAULT_SCOPE__").Map("webapp.challenge-detail")
	if detail != nil && detail.Int("statusCode") == 0 {
		info := detail.Map("challengeInfo")
		if c := info.Map("challenge"); c.Has("id") {
			return c, info.Map("stats"), true
		}
	}

	info := st.sigi.Map("ChallengeModule").Map("challengeInfo")
	if c := info.Map("challenge"); c.Has("id") {
		return c, info.Map("stats"), true
	}
	return nil, nil, false
}

// videoItem returns the item object for a video detail page.
func (st *pageState) videoItem(videoID string) (model.RawItem, bool) {
	detail := st.universal.Map("__DEFAULT_SCOPE__").Map("webapp.video-detail")
	if detail != nil && detail.Int("statusCode") == 0 {
		if item := detail.Map("itemInfo").Map("itemStruct"); item.Has("id") {
			return item, true
		}
	}

	if item := st.sigi.Map("ItemModule").Map(videoID); item.Has("id") {
		return item, true
	}
	return nil, false
}
