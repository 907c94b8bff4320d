package server

import (
	"ticketx/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetEvents handles GET /api/events.
func (s *Server) GetEvents(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"events": s.tickets.Events()})
}

// GetEvent handles GET /api/events/:id.
func (s *Server) GetEvent(c *fiber.Ctx) error {
	event, err := s.tickets.EventByID(c.Params("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(event)
}

// GetSeats handles GET /api/events/:id/seats, including which seats the
// cart already holds.
func (s *Server) GetSeats(c *fiber.Ctx) error {
	eventID := c.Params("id")
	seats, err := s.tickets.Seats(c.UserContext(), eventID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"seats":    seats,
		"selected": s.tickets.SelectedSeatIDs(eventID),
	})
}

// AddToCart handles POST /api/cart/items.
func (s *Server) AddToCart(c *fiber.Ctx) error {
	var req struct {
		EventID string `json:"event_id"`
		SeatID  string `json:"seat_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.EventID == "" || req.SeatID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("event_id and seat_id are required"))
	}

	if err := s.tickets.AddToCart(c.UserContext(), req.EventID, req.SeatID); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"items":  s.tickets.CartItems(),
		"totals": s.tickets.CartTotals(),
	})
}

// GetCart handles GET /api/cart.
func (s *Server) GetCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items":  s.tickets.CartItems(),
		"totals": s.tickets.CartTotals(),
	})
}

// ClearCart handles DELETE /api/cart.
func (s *Server) ClearCart(c *fiber.Ctx) error {
	s.tickets.ClearCart()
	return c.JSON(fiber.Map{"status": "cleared"})
}
