package service

import (
	"context"

	"ticketx/internal/cache"
	"ticketx/internal/models"
	"ticketx/internal/repository"
)

// SocialGraphService manages directed follow relationships between users.
type SocialGraphService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

// NewSocialGraphService creates a new SocialGraphService.
func NewSocialGraphService(users repository.UserRepository, follows repository.FollowRepository) *SocialGraphService {
	return &SocialGraphService{users: users, follows: follows}
}

// Follow makes follower follow target. Self-follows are rejected, and
// following someone already followed is a no-op. Both profiles' cached
// views are invalidated since the edge appears in each.
func (s *SocialGraphService) Follow(ctx context.Context, follower, target string) error {
	if follower == target {
		return models.NewValidationError("Cannot follow yourself")
	}
	followerUser, targetUser, err := s.resolvePair(ctx, follower, target)
	if err != nil {
		return err
	}
	if err := s.follows.Create(ctx, followerUser.ID, targetUser.ID); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, follower)
	cache.InvalidateUser(ctx, target)
	return nil
}

// Unfollow removes the edge. Unfollowing someone not followed is a no-op,
// and so is a self-unfollow: the edge can never exist, so there is nothing
// to reject.
func (s *SocialGraphService) Unfollow(ctx context.Context, follower, target string) error {
	followerUser, targetUser, err := s.resolvePair(ctx, follower, target)
	if err != nil {
		return err
	}
	if err := s.follows.Delete(ctx, followerUser.ID, targetUser.ID); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, follower)
	cache.InvalidateUser(ctx, target)
	return nil
}

// IsFollowing reports whether follower currently follows target. Unknown
// usernames on either side read as false rather than an error.
func (s *SocialGraphService) IsFollowing(ctx context.Context, follower, target string) (bool, error) {
	followerUser, err := s.users.GetByUsername(ctx, follower)
	if err != nil {
		return false, err
	}
	targetUser, err := s.users.GetByUsername(ctx, target)
	if err != nil {
		return false, err
	}
	if followerUser == nil || targetUser == nil {
		return false, nil
	}
	return s.follows.Exists(ctx, followerUser.ID, targetUser.ID)
}

// Following returns the usernames the user follows, sorted. An unknown
// user has an empty following set.
func (s *SocialGraphService) Following(ctx context.Context, username string) ([]string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []string{}, nil
	}
	return s.follows.FollowingUsernames(ctx, user.ID)
}

// Followers returns the usernames following the user, sorted. An unknown
// user has an empty follower set.
func (s *SocialGraphService) Followers(ctx context.Context, username string) ([]string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []string{}, nil
	}
	return s.follows.FollowerUsernames(ctx, user.ID)
}

// Profile returns the user together with their follower and following
// username lists, served cache-aside keyed by username.
func (s *SocialGraphService) Profile(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(username), &user, cache.UserTTL, func() error {
		found, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if found == nil {
			return models.NewNotFoundError("User", username)
		}
		followers, err := s.follows.FollowerUsernames(ctx, found.ID)
		if err != nil {
			return err
		}
		following, err := s.follows.FollowingUsernames(ctx, found.ID)
		if err != nil {
			return err
		}
		found.Followers = followers
		found.Following = following
		user = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SocialGraphService) resolvePair(ctx context.Context, follower, target string) (*models.User, *models.User, error) {
	followerUser, err := s.users.GetByUsername(ctx, follower)
	if err != nil {
		return nil, nil, err
	}
	if followerUser == nil {
		return nil, nil, models.NewNotFoundError("User", follower)
	}
	targetUser, err := s.users.GetByUsername(ctx, target)
	if err != nil {
		return nil, nil, err
	}
	if targetUser == nil {
		return nil, nil, models.NewNotFoundError("User", target)
	}
	return followerUser, targetUser, nil
}
