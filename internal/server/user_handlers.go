package server

import (
	"ticketx/internal/models"
	"ticketx/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /api/users, a paged directory of accounts for the
// people-discovery page. Limit is capped so a crawler cannot pull the whole
// table in one request.
func (s *Server) ListUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetProfile handles GET /api/users/:username, returning the profile with
// follower/following lists and the user's posts newest first.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.graph.Profile(c.UserContext(), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	posts, err := s.postRepo.List(c.UserContext(), repository.PostFilter{
		AuthorIDs: []uint{user.ID},
	}, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"posts": posts,
	})
}

// GetFollowers handles GET /api/users/:username/followers.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	names, err := s.graph.Followers(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"followers": names})
}

// GetFollowing handles GET /api/users/:username/following.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	names, err := s.graph.Following(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"following": names})
}

// UpdateMyProfile handles PUT /api/users/me. Only the fields present in the
// body change.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Bio    *string `json:"bio"`
		Avatar *string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.identity.UpdateProfile(c.UserContext(), currentUsername(c), req.Bio, req.Avatar)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// UploadAvatar handles POST /api/users/me/avatar with a multipart "file"
// field. The stored image URL becomes the user's avatar.
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	content, contentType, err := readUploadedFile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	url, err := s.uploads.Save(content, contentType)
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.identity.UpdateProfile(c.UserContext(), currentUsername(c), nil, &url)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": user, "avatar": url})
}

// FollowUser handles POST /api/users/:username/follow.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	if err := s.graph.Follow(c.UserContext(), currentUsername(c), c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "following"})
}

// UnfollowUser handles DELETE /api/users/:username/follow.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	if err := s.graph.Unfollow(c.UserContext(), currentUsername(c), c.Params("username")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "not following"})
}
