package model

// SoundInfo describes the music attached to a video.
type SoundInfo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	Duration   int64  `json:"duration"`
}

// HashtagInfo describes a single challenge tag on a video.
type HashtagInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ImageInfo describes one attachment of an image-mode post.
type ImageInfo struct {
	URL    string `json:"url"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
}

// VideoRecord is the flat projection of one item from a post-list page.
// Absent source fields keep their zero values; no field is ever required.
type VideoRecord struct {
	ID                  string        `json:"id"`
	Description         string        `json:"description"`
	CreateTime          int64         `json:"create_time"`
	CreateTimeFormatted string        `json:"create_time_formatted"`
	PlayCount           int64         `json:"play_count"`
	DiggCount           int64         `json:"digg_count"`
	CommentCount        int64         `json:"comment_count"`
	ShareCount          int64         `json:"share_count"`
	CollectCount        int64         `json:"collect_count"`
	AuthorID            string        `json:"author_id"`
	AuthorUsername      string        `json:"author_username"`
	AuthorNickname      string        `json:"author_nickname"`
	Music               SoundInfo     `json:"music"`
	Hashtags            []HashtagInfo `json:"hashtags"`
	Images              []ImageInfo   `json:"images,omitempty"`
	Duration            int64         `json:"duration"`
	IsPinned            bool          `json:"is_pinned"`
}

// CommentUser is the author of a comment or reply.
type CommentUser struct {
	ID        string `json:"id"`
	SecUID    string `json:"sec_uid"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// CommentRecord is the flat projection of one comment-list item. A record
// with a non-zero ReplyID is a reply to the comment carrying that ID.
type CommentRecord struct {
	CommentID           string      `json:"comment_id"`
	VideoID             string      `json:"video_id"`
	Text                string      `json:"text"`
	CreateTime          int64       `json:"create_time"`
	CreateTimeFormatted string      `json:"create_time_formatted"`
	DiggCount           int64       `json:"digg_count"`
	ReplyCount          int64       `json:"reply_count"`
	ReplyID             string      `json:"reply_id"`
	IsReply             bool        `json:"is_reply"`
	LikedByAuthor       bool        `json:"liked_by_author"`
	Pinned              bool        `json:"pinned"`
	User                CommentUser `json:"user"`
}

// CommentThread groups one top-level comment with its captured replies,
// preserving capture order.
type CommentThread struct {
	Comment CommentRecord   `json:"comment"`
	Replies []CommentRecord `json:"replies"`
}

// CommentResult is the outcome of a full comment extraction. Orphans are
// replies whose parent was never captured (deleted, or not scrolled into
// view); they are reported rather than dropped.
type CommentResult struct {
	Threads []CommentThread `json:"threads"`
	Orphans []CommentRecord `json:"orphans"`
	Total   int             `json:"total"`
}

// FollowScene distinguishes the two views served by the user-list endpoint.
type FollowScene int

const (
	// SceneFollowing requests the accounts a user follows (scene=21).
	SceneFollowing FollowScene = 21
	// SceneFollowers requests the accounts following a user (scene=67).
	SceneFollowers FollowScene = 67
)

// String returns the human label used in output files and logs.
func (s FollowScene) String() string {
	switch s {
	case SceneFollowing:
		return "following"
	case SceneFollowers:
		return "followers"
	default:
		return "unknown"
	}
}

// UserListRecord is the flat projection of one user-list entry. The same
// shape is produced for both following and followers views; Scene records
// which one was requested.
type UserListRecord struct {
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	Nickname       string `json:"nickname"`
	Signature      string `json:"signature"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
	VideoCount     int64  `json:"video_count"`
	IsFollowing    bool   `json:"is_following"`
	IsFollowedBy   bool   `json:"is_followed_by"`
	Scene          string `json:"scene"`
}

// SoundRecord is the projection of a sound page's embedded state blob.
type SoundRecord struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	PlayURL    string `json:"play_url"`
	Duration   int64  `json:"duration"`
	VideoCount int64  `json:"video_count"`
}

// HashtagRecord is the projection of a tag page's embedded state blob.
type HashtagRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoCount  int64  `json:"video_count"`
	ViewCount   int64  `json:"view_count"`
	IsCommerce  bool   `json:"is_commerce"`
}

// UserProfile is the projection of a user page's embedded state blob.
type UserProfile struct {
	ID             string `json:"id"`
	SecUID         string `json:"sec_uid"`
	Username       string `json:"username"`
	Nickname       string `json:"nickname"`
	Signature      string `json:"signature"`
	Verified       bool   `json:"verified"`
	Region         string `json:"region"`
	AvatarURL      string `json:"avatar_url"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
	HeartCount     int64  `json:"heart_count"`
	VideoCount     int64  `json:"video_count"`
	DiggCount      int64  `json:"digg_count"`
}
