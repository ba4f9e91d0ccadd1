package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

func TestEndpointMatches_PathSubstring(t *testing.T) {
	assert.True(t, CommentList.Matches("https://www.tiktok.com/api/comment/list/?aweme_id=123&cursor=0"))
	assert.False(t, CommentList.Matches("https://www.tiktok.com/api/post/item_list/?cursor=0"))
}

func TestEndpointMatches_ReplyEndpointSharesStream(t *testing.T) {
	assert.True(t, CommentList.Matches("https://www.tiktok.com/api/comment/list/reply/?comment_id=9"))
}

func TestEndpointMatches_SceneQuery(t *testing.T) {
	following := UserListEndpoint(model.SceneFollowing)
	followers := UserListEndpoint(model.SceneFollowers)

	url := "https://www.tiktok.com/api/user/list/?scene=21&count=30"
	assert.True(t, following.Matches(url))
	assert.False(t, followers.Matches(url))
}

func TestDecodePage_CommentBody(t *testing.T) {
	body := []byte(`{
		"status_code": 0,
		"comments": [{"cid": "1"}, {"cid": "2"}],
		"has_more": 1,
		"cursor": 20
	}`)

	page, err := decodePage(CommentList, 3, body)
	require.NoError(t, err)
	assert.Equal(t, "comments", page.Endpoint)
	assert.Equal(t, 3, page.Seq)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, "20", page.Cursor)
}

func TestDecodePage_ItemListBody(t *testing.T) {
	body := []byte(`{"statusCode": 0, "itemList": [{"id": "a"}], "hasMore": false, "cursor": "1700000000000"}`)

	page, err := decodePage(PostItemList, 0, body)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.False(t, page.HasMore)
	assert.Equal(t, "1700000000000", page.Cursor)
}

func TestDecodePage_MissingStatusIsSuccess(t *testing.T) {
	page, err := decodePage(PostItemList, 0, []byte(`{"itemList": []}`))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
}

func TestDecodePage_NonZeroStatusRejected(t *testing.T) {
	_, err := decodePage(CommentList, 0, []byte(`{"status_code": 5, "comments": [{"cid": "1"}]}`))
	assert.Error(t, err)
}

func TestDecodePage_MalformedBody(t *testing.T) {
	_, err := decodePage(CommentList, 0, []byte(`<html>blocked</html>`))
	assert.Error(t, err)
}
