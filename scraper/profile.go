package scraper

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/tiktok-scraper/common"
	"github.com/researchaccelerator-hub/tiktok-scraper/model"
	"github.com/researchaccelerator-hub/tiktok-scraper/parse"
)

// Profile reads a user's profile from the page's embedded state. Results
// are cached per session, so repeated lookups during a batch run do not
// cost a navigation.
func (s *Scraper) Profile(ctx context.Context, username string) (*model.UserProfile, error) {
	username = common.CanonicalUsername(username)

	if cached, ok := s.profiles.Get(username); ok {
		log.Debug().Str("username", username).Msg("Profile served from cache")
		return cached, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := s.session.Navigate(ctx, profileURL(username)); err != nil {
		return nil, err
	}

	html, err := s.session.PageSource(ctx)
	if err != nil {
		return nil, err
	}
	st, err := parsePageState(html)
	if err != nil {
		return nil, err
	}

	user, stats, ok := st.userInfo(username)
	if !ok {
		s.limiter.RecordThrottled()
		return nil, &InvalidResponseError{
			Message:    "profile page carried no user state for @" + username,
			PageSource: html,
		}
	}

	profile := parse.Profile(user, stats)
	s.profiles.Add(username, profile)
	log.Info().Str("username", username).Int64("followers", profile.FollowerCount).Msg("Profile scraped")
	return profile, nil
}
