package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/researchaccelerator-hub/tiktok-scraper/scraper"
)

var videosCmd = &cobra.Command{
	Use:   "videos [username...]",
	Short: "Scrape the videos posted by one or more users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "videos", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.UserVideos(ctx, seed)
		})
	},
}

var repostsCmd = &cobra.Command{
	Use:   "reposts [username...]",
	Short: "Scrape the videos reposted by one or more users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "reposts", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.UserReposts(ctx, seed)
		})
	},
}

var commentsCmd = &cobra.Command{
	Use:   "comments [video-url...]",
	Short: "Scrape the comment threads of one or more videos",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "comments", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.VideoComments(ctx, seed)
		})
	},
}

var followingCmd = &cobra.Command{
	Use:   "following [username...]",
	Short: "Scrape the accounts a user follows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "following", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.Following(ctx, seed)
		})
	},
}

var followersCmd = &cobra.Command{
	Use:   "followers [username...]",
	Short: "Scrape the accounts following a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "followers", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.Followers(ctx, seed)
		})
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile [username...]",
	Short: "Scrape the profile card of one or more users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "profile", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.Profile(ctx, seed)
		})
	},
}

var videoCmd = &cobra.Command{
	Use:   "video [video-url...]",
	Short: "Scrape the metadata of one or more videos",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "info", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.VideoInfo(ctx, seed)
		})
	},
}

var likedCmd = &cobra.Command{
	Use:   "liked [username...]",
	Short: "Scrape the videos liked by one or more users (public likes only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "liked", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.UserLiked(ctx, seed)
		})
	},
}

var soundCmd = &cobra.Command{
	Use:   "sound [sound-url-or-id...]",
	Short: "Scrape the metadata of one or more sounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "sound", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.SoundInfo(ctx, seed)
		})
	},
}

var soundVideosCmd = &cobra.Command{
	Use:   "sound-videos [sound-url-or-id...]",
	Short: "Scrape the videos using one or more sounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "sound_videos", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.SoundVideos(ctx, seed)
		})
	},
}

var hashtagCmd = &cobra.Command{
	Use:   "hashtag [tag...]",
	Short: "Scrape the metadata of one or more hashtags",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "hashtag", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.HashtagInfo(ctx, seed)
		})
	},
}

var hashtagVideosCmd = &cobra.Command{
	Use:   "hashtag-videos [tag...]",
	Short: "Scrape the videos under one or more hashtags",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), "hashtag_videos", args, func(ctx context.Context, s *scraper.Scraper, seed string) (any, error) {
			return s.HashtagVideos(ctx, seed)
		})
	},
}

func init() {
	rootCmd.AddCommand(
		videosCmd, repostsCmd, likedCmd, commentsCmd,
		followingCmd, followersCmd, profileCmd, videoCmd,
		soundCmd, soundVideosCmd, hashtagCmd, hashtagVideosCmd,
	)
}
