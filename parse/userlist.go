package parse

import (
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// UserListEntry flattens one entry from a following/followers page. Each
// entry carries a nested user object plus a stats object with counts.
func UserListEntry(item model.RawItem, scene model.FollowScene) model.UserListRecord {
	user := item.Map("user")
	stats := item.Map("stats")
	return model.UserListRecord{
		UserID:         user.String("id"),
		Username:       user.String("uniqueId"),
		Nickname:       user.String("nickname"),
		Signature:      user.String("signature"),
		FollowerCount:  stats.Int("followerCount"),
		FollowingCount: stats.Int("followingCount"),
		VideoCount:     stats.Int("videoCount"),
		IsFollowing:    user.Bool("isFollowing"),
		IsFollowedBy:   user.Bool("isFollower"),
		Scene:          scene.String(),
	}
}
