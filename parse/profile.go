package parse

import (
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
)

// Profile flattens a user object plus its stats object into a UserProfile.
// Both maps come from page-state blobs, so counts arrive as JSON numbers
// rather than the string counters the list endpoints serve.
func Profile(user, stats model.RawItem) *model.UserProfile {
	avatar := ""
	switch {
	case user.Has("avatarLarger"):
		avatar = user.String("avatarLarger")
	case user.Has("avatarThumb"):
		avatar = user.String("avatarThumb")
	}
	return &model.UserProfile{
		ID:             user.String("id"),
		SecUID:         user.String("secUid"),
		Username:       user.String("uniqueId"),
		Nickname:       user.String("nickname"),
		Signature:      user.String("signature"),
		Verified:       user.Bool("verified"),
		Region:         user.String("region"),
		AvatarURL:      avatar,
		FollowerCount:  stats.Int("followerCount"),
		FollowingCount: stats.Int("followingCount"),
		HeartCount:     stats.Int("heartCount"),
		VideoCount:     stats.Int("videoCount"),
		DiggCount:      stats.Int("diggCount"),
	}
}
