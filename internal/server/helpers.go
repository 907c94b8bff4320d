package server

import (
	"errors"

	"ticketx/internal/middleware"
	"ticketx/internal/models"
	"ticketx/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals the HTTP response was already committed by a
// helper. Handlers must return nil in that case.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive uint. On failure it
// writes a 400 response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondServiceError maps an AppError to its HTTP status.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
		case "UNAUTHORIZED":
			status = fiber.StatusUnauthorized
		}
	}
	return models.RespondWithError(c, status, err)
}

// respondFeedPage paginates posts with the configured page size and writes
// the standard feed envelope. The page query parameter is 1-based and
// clamps to the valid range.
func (s *Server) respondFeedPage(c *fiber.Ctx, posts []*models.Post) error {
	page := c.QueryInt("page", 1)
	pageItems, page, totalPages := service.Paginate(posts, page, s.feeds.PageSize())
	return c.JSON(fiber.Map{
		"posts":       pageItems,
		"page":        page,
		"total_pages": totalPages,
		"total":       len(posts),
	})
}

// currentUsername returns the logged-in username or "".
func currentUsername(c *fiber.Ctx) string {
	return middleware.CurrentUsername(c)
}

// currentUserID returns the logged-in user ID or 0.
func currentUserID(c *fiber.Ctx) uint {
	return middleware.CurrentUserID(c)
}
