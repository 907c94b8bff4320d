// Package middleware provides authentication, CSRF, rate limiting and
// request logging middleware for the HTTP layer.
package middleware

import (
	"ticketx/internal/models"
	"ticketx/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	// SessionCookie is the cookie carrying the opaque session token.
	SessionCookie = "sid"
	// CSRFHeader carries the per-session CSRF secret on state-changing requests.
	CSRFHeader = "X-CSRF-Token"
)

// SessionResolver resolves the session cookie if present and stashes the
// session, user ID and username in Locals. It never rejects: routes that
// need a login stack RequireAuth on top.
func SessionResolver(gate *service.SessionGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Next()
		}
		session, err := gate.Authorize(c.UserContext(), token)
		if err != nil || session == nil {
			// An unknown or stale cookie reads as logged out.
			return c.Next()
		}
		c.Locals("session", session)
		c.Locals("userID", session.UserID)
		c.Locals("username", session.User.Username)
		return c.Next()
	}
}

// RequireAuth rejects requests that did not present a valid session cookie.
func RequireAuth(c *fiber.Ctx) error {
	if c.Locals("session") == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Login required"))
	}
	return c.Next()
}

// RequireCSRF rejects state-changing requests whose CSRF header does not
// match the secret issued with the session. It must run after
// SessionResolver and RequireAuth.
func RequireCSRF(gate *service.SessionGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		ok, err := gate.VerifyCSRF(c.UserContext(), token, c.Get(CSRFHeader))
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !ok {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("CSRF token missing or invalid"))
		}
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID, or 0 for anonymous
// requests.
func CurrentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// CurrentUsername returns the authenticated username, or "" for anonymous
// requests.
func CurrentUsername(c *fiber.Ctx) string {
	if name, ok := c.Locals("username").(string); ok {
		return name
	}
	return ""
}
