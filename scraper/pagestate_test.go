package scraper

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageWithScript(id, blob string) string {
	return fmt.Sprintf(`<html><head></head><body>
		<div id="app">content</div>
		<script id="%s" type="application/json">%s</script>
	</body></html>`, id, blob)
}

func TestParsePageState_UniversalProfile(t *testing.T) {
	html := pageWithScript(universalDataID, `{
		"__DEFAULT_SCOPE__": {
			"webapp.user-detail": {
				"statusCode": 0,
				"userInfo": {
					"user": {"id": "42", "uniqueId": "somebody", "secUid": "MS4w"},
					"stats": {"followerCount": 1000}
				}
			}
		}
	}`)

	st, err := parsePageState(html)
	require.NoError(t, err)

	user, stats, ok := st.userInfo("somebody")
	require.True(t, ok)
	assert.Equal(t, "42", user.String("id"))
	assert.Equal(t, int64(1000), stats.Int("followerCount"))
}

func TestParsePageState_UniversalErrorStatusFallsThrough(t *testing.T) {
	html := pageWithScript(universalDataID, `{
		"__DEFAULT_SCOPE__": {
			"webapp.user-detail": {"statusCode": 10222}
		}
	}`)

	st, err := parsePageState(html)
	require.NoError(t, err)

	_, _, ok := st.userInfo("somebody")
	assert.False(t, ok)
}

func TestParsePageState_SigiProfileFallback(t *testing.T) {
	html := pageWithScript(sigiStateID, `{
		"UserModule": {
			"users": {"somebody": {"id": "42", "uniqueId": "somebody"}},
			"stats": {"somebody": {"followerCount": 7}}
		}
	}`)

	st, err := parsePageState(html)
	require.NoError(t, err)

	user, stats, ok := st.userInfo("somebody")
	require.True(t, ok)
	assert.Equal(t, "42", user.String("id"))
	assert.Equal(t, int64(7), stats.Int("followerCount"))
}

func TestParsePageState_VideoItem(t *testing.T) {
	html := pageWithScript(sigiStateID, `{
		"ItemModule": {
			"7301": {"id": "7301", "desc": "hello", "stats": {"playCount": 9}}
		}
	}`)

	st, err := parsePageState(html)
	require.NoError(t, err)

	item, ok := st.videoItem("7301")
	require.True(t, ok)
	assert.Equal(t, "hello", item.String("desc"))
}

func TestParsePageState_NoBlobs(t *testing.T) {
	st, err := parsePageState(`<html><body><div>captcha</div></body></html>`)
	require.NoError(t, err)

	_, _, ok := st.userInfo("somebody")
	assert.False(t, ok)
	_, itemOK := st.videoItem("1")
	assert.False(t, itemOK)
}

func TestParsePageState_MalformedBlobIgnored(t *testing.T) {
	st, err := parsePageState(pageWithScript(sigiStateID, `{ not json`))
	require.NoError(t, err)

	_, _, ok := st.userInfo("somebody")
	assert.False(t, ok)
}

func TestParsePageState_SoundInfo(t *testing.T) {
	html := pageWithScript(universalDataID, `{
		"__DEFAULT_SCOPE__": {
			"webapp.music-detail": {
				"statusCode": 0,
				"musicInfo": {
					"music": {"id": "7016", "title": "original sound", "authorName": "somebody"},
					"stats": {"videoCount": 1200}
				}
			}
		}
	}`)

	st, err := parsePageState(html)
	require.NoError(t, err)

	music, stats, ok := st.soundInfo()
	require.True(t, ok)
	assert.Equal(t, "original sound", music.String("title"))
	assert.Equal(t, int64(1200), stats.Int("videoCount"))
}

func TestParsePageState_SoundSigiFallback(t *testing.T) {
	html := pageWithScript(sigiStateID, `{
		"MusicModule": {
			"musicInfo": {"music": {"id": "7016"}, "stats": {"videoCount": 3}}
		}
	}`)

	st, err := parsePageState(html)
	require.NoError(t, err)

	music, stats, ok := st.soundInfo()
	require.True(t, ok)
	assert.Equal(t, "7016", music.String("id"))
	assert.Equal(t, int64(3), stats.Int("videoCount"))
}

func TestParsePageState_HashtagInfo(t *testing.T) {
	html := pageWithScript(universalDataID, `{
		"__DEFAULT_SCOPE__": {
			"webapp.challenge-detail": {
				"statusCode": 0,
				"challengeInfo": {
					"challenge": {"id": "17", "title": "fyp"},
					"stats": {"viewCount": 90000}
				}
			}
		}
	}`)

	st, err := parsePageState(html)
	require.NoError(t, err)

	challenge, stats, ok := st.hashtagInfo()
	require.True(t, ok)
	assert.Equal(t, "fyp", challenge.String("title"))
	assert.Equal(t, int64(90000), stats.Int("viewCount"))
}

func TestParsePageState_HashtagMissing(t *testing.T) {
	st, err := parsePageState(`<html><body></body></html>`)
	require.NoError(t, err)

	_, _, ok := st.hashtagInfo()
	assert.False(t, ok)
	_, _, soundOK := st.soundInfo()
	assert.False(t, soundOK)
}

func TestSoundURLFromSeed(t *testing.T) {
	assert.Equal(t,
		"https://www.tiktok.com/music/original-sound-7016",
		soundURLFromSeed("7016"))
	assert.Equal(t,
		"https://www.tiktok.com/music/cool-song-42",
		soundURLFromSeed("https://www.tiktok.com/music/cool-song-42"))
}

func TestHashtagNameFromSeed(t *testing.T) {
	assert.Equal(t, "fyp", hashtagNameFromSeed("fyp"))
	assert.Equal(t, "fyp", hashtagNameFromSeed("#fyp"))
	assert.Equal(t, "fyp", hashtagNameFromSeed("https://www.tiktok.com/tag/fyp"))
	assert.Equal(t, "fyp", hashtagNameFromSeed("https://www.tiktok.com/tag/fyp?lang=en"))
}

func TestVideoIDFromURL(t *testing.T) {
	assert.Equal(t, "7301", videoIDFromURL("https://www.tiktok.com/@somebody/video/7301"))
	assert.Equal(t, "7301", videoIDFromURL("https://www.tiktok.com/@somebody/video/7301?lang=en"))
	assert.Empty(t, videoIDFromURL("https://www.tiktok.com/@somebody"))
}
