package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/auth/magic-link", h.RequestMagicLink)
	app.Get("/auth/callback", h.Callback)
	app.Post("/auth/logout", h.RequireSession, h.Logout)
	app.Get("/api/me", h.RequireSession, h.Me)
	app.Get("/health", h.Health)
}
