package parse

import (
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// Comment flattens one comment-list item into a CommentRecord. The same
// shape is served for top-level comments and replies; a reply is recognized
// by a reply_id pointing at its parent ("0" or absent means top-level).
func Comment(item model.RawItem) model.CommentRecord {
	createTime := item.Int("create_time")
	replyID := item.String("reply_id")
	if replyID == "0" {
		replyID = ""
	}

	user := item.Map("user")
	avatar := ""
	if urls := user.Map("avatar_thumb").Strings("url_list"); len(urls) > 0 {
		avatar = urls[0]
	}

	return model.CommentRecord{
		CommentID:           item.String("cid"),
		VideoID:             item.String("aweme_id"),
		Text:                item.String("text"),
		CreateTime:          createTime,
		CreateTimeFormatted: formatUnix(createTime),
		DiggCount:           item.Int("digg_count"),
		ReplyCount:          item.Int("reply_comment_total"),
		ReplyID:             replyID,
		IsReply:             replyID != "",
		LikedByAuthor:       item.Bool("is_author_digged"),
		Pinned:              item.Int("stick_position") != 0,
		User: model.CommentUser{
			ID:        user.String("uid"),
			SecUID:    user.String("sec_uid"),
			Username:  user.String("unique_id"),
			Nickname:  user.String("nickname"),
			AvatarURL: avatar,
		},
	}
}
