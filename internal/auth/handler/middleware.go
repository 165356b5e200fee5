package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wicaksonoadi/magiclink-service/internal/auth/service"
	"github.com/wicaksonoadi/magiclink-service/pkg/constant"
)

const sessionLocalsKey = "session"

// RequireSession guards authenticated routes. A valid cookie puts the parsed
// claims into the request locals; when less than half the session lifetime
// remains the cookie is re-issued, which gives the expiry its sliding
// behavior.
func (h *AuthHandler) RequireSession(c *fiber.Ctx) error {
	value := c.Cookies(constant.SessionCookieName)
	if value == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	claims, err := h.sessions.Verify(value)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if h.sessions.ShouldRefresh(claims) {
		if refreshed, err := h.sessions.Refresh(claims); err == nil {
			h.setSessionCookie(c, refreshed, h.sessions.SessionExpiry)
		}
	}

	c.Locals(sessionLocalsKey, claims)

	return c.Next()
}

func sessionClaims(c *fiber.Ctx) *service.SessionClaims {
	claims, ok := c.Locals(sessionLocalsKey).(*service.SessionClaims)
	if !ok {
		return nil
	}

	return claims
}
