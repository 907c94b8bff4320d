package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFollowingFeed handles GET /api/feed: posts by the logged-in user and
// everyone they follow, newest first, paginated.
func (s *Server) GetFollowingFeed(c *fiber.Ctx) error {
	posts, err := s.feeds.FollowingFeed(c.UserContext(), currentUsername(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return s.respondFeedPage(c, posts)
}

// GetGlobalFeed handles GET /api/feed/global: every post, newest first.
func (s *Server) GetGlobalFeed(c *fiber.Ctx) error {
	posts, err := s.feeds.GlobalFeed(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return s.respondFeedPage(c, posts)
}

// GetTrendingFeed handles GET /api/feed/trending: posts ranked by
// engagement score.
func (s *Server) GetTrendingFeed(c *fiber.Ctx) error {
	posts, err := s.feeds.Trending(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return s.respondFeedPage(c, posts)
}

// GetHashtagFeed handles GET /api/tags/:tag, case-insensitively.
func (s *Server) GetHashtagFeed(c *fiber.Ctx) error {
	posts, err := s.feeds.ByHashtag(c.UserContext(), c.Params("tag"), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return s.respondFeedPage(c, posts)
}

// GetMentionFeed handles GET /api/mentions/:username, case-insensitively.
// The username does not have to belong to a registered account.
func (s *Server) GetMentionFeed(c *fiber.Ctx) error {
	posts, err := s.feeds.ByMention(c.UserContext(), c.Params("username"), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return s.respondFeedPage(c, posts)
}
