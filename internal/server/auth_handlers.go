package server

import (
	"ticketx/internal/middleware"
	"ticketx/internal/models"

	"github.com/gofiber/fiber/v2"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// setSessionCookie installs the session cookie. The CSRF secret is returned
// in the body instead of a cookie so scripts on other origins cannot read
// it.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production",
		Path:     "/",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production",
		Path:     "/",
		MaxAge:   -1,
	})
}

// Signup handles POST /api/auth/signup. A successful signup logs the new
// account in immediately.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.identity.CreateUser(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	session, err := s.identity.CreateSession(c.UserContext(), user, "signup")
	if err != nil {
		return respondServiceError(c, err)
	}
	s.setSessionCookie(c, session.Token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":       user,
		"csrf_token": session.CSRFSecret,
	})
}

// Login handles POST /api/auth/login.
func (s *Server) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.identity.VerifyLogin(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	session, err := s.identity.CreateSession(c.UserContext(), user, "login")
	if err != nil {
		return respondServiceError(c, err)
	}
	s.setSessionCookie(c, session.Token)

	return c.JSON(fiber.Map{
		"user":       user,
		"csrf_token": session.CSRFSecret,
	})
}

// Logout handles POST /api/auth/logout. Logging out an already logged-out
// client succeeds.
func (s *Server) Logout(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookie)
	if err := s.identity.DestroySession(c.UserContext(), token); err != nil {
		return respondServiceError(c, err)
	}
	s.clearSessionCookie(c)
	return c.JSON(fiber.Map{"status": "logged out"})
}

// Me handles GET /api/auth/me, returning the logged-in user and the CSRF
// secret the client must echo on state-changing requests.
func (s *Server) Me(c *fiber.Ctx) error {
	session, ok := c.Locals("session").(*models.Session)
	if !ok || session == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Not logged in"))
	}
	return c.JSON(fiber.Map{
		"user":       session.User,
		"csrf_token": session.CSRFSecret,
	})
}
