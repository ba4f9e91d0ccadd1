package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/tiktok-scraper/capture"
	"github.com/researchaccelerator-hub/tiktok-scraper/common"
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
	"github.com/researchaccelerator-hub/tiktok-scraper/parse"
)

// The follow lists live in a modal opened by clicking the profile's count
// elements, and the modal has its own scroll container.
const (
	followingCountSelector = `[data-e2e="following-count"]`
	followersCountSelector = `[data-e2e="followers-count"]`
	userListContainer      = `div[class*="DivUserListContainer"]`
)

// Following captures the accounts a user follows.
func (s *Scraper) Following(ctx context.Context, username string) ([]model.UserListRecord, error) {
	return s.followList(ctx, username, model.SceneFollowing, followingCountSelector)
}

// Followers captures the accounts following a user. The list is only
// complete for accounts the logged-in session may see it for.
func (s *Scraper) Followers(ctx context.Context, username string) ([]model.UserListRecord, error) {
	return s.followList(ctx, username, model.SceneFollowers, followersCountSelector)
}

func (s *Scraper) followList(ctx context.Context, username string, scene model.FollowScene, countSelector string) ([]model.UserListRecord, error) {
	username = common.CanonicalUsername(username)

	openModal := func(ctx context.Context) error {
		if err := s.session.Click(ctx, countSelector, 10*time.Second); err != nil {
			return fmt.Errorf("failed to open %s list: %w", scene, err)
		}
		if err := s.session.WaitVisible(ctx, userListContainer, 10*time.Second); err != nil {
			return fmt.Errorf("%s list did not open: %w", scene, err)
		}
		return nil
	}

	cfg := s.scrollConfig()
	cfg.Containers = []string{userListContainer}

	pages, err := s.capture(ctx, profileURL(username), capture.UserListEndpoint(scene), cfg, openModal)
	if err != nil {
		return nil, err
	}

	records := parse.UserList(pages, scene)
	log.Info().
		Str("username", username).
		Stringer("scene", scene).
		Int("users", len(records)).
		Msg("Follow list scraped")
	return records, nil
}
