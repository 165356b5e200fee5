package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wicaksonoadi/magiclink-service/config"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/domain"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/dto"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/service"
	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
	"github.com/wicaksonoadi/magiclink-service/pkg/constant"
)

// BackendReporter exposes per-backend liveness for the health endpoint.
type BackendReporter interface {
	Status(ctx context.Context) domain.BackendStatus
}

type AuthHandler struct {
	magicLink *service.MagicLinkService
	sessions  *service.SessionService
	backends  BackendReporter
	cfg       *config.Config
}

func NewAuthHandler(magicLink *service.MagicLinkService, sessions *service.SessionService, backends BackendReporter, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		magicLink: magicLink,
		sessions:  sessions,
		backends:  backends,
		cfg:       cfg,
	}
}

func (h *AuthHandler) RequestMagicLink(c *fiber.Ctx) error {
	var input dto.MagicLinkInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	input.IPAddress = c.IP()

	err := h.magicLink.RequestLink(c.Context(), input)
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).JSON(dto.MessageOutput{
			Message: "check your email for a sign-in link",
		})
	case errors.Is(err, autherror.ErrInvalidEmail):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid email address",
		})
	case errors.Is(err, autherror.ErrTooManyRequests):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "too many requests",
		})
	default:
		// The client never learns which internal step failed.
		slog.Error("magic link request failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "unable to send sign-in link",
		})
	}
}

func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	token := c.Query("token")

	email, err := h.magicLink.Redeem(c.Context(), token)
	if err != nil {
		return c.Redirect(h.cfg.LoginErrorURL, fiber.StatusFound)
	}

	value, err := h.sessions.Establish(email)
	if err != nil {
		slog.Error("session establish failed", "error", err)
		return c.Redirect(h.cfg.LoginErrorURL, fiber.StatusFound)
	}

	h.setSessionCookie(c, value, h.sessions.SessionExpiry)
	slog.Info("session established", "email", email)

	return c.Redirect(h.cfg.LoginSuccessURL, fiber.StatusFound)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims := sessionClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	return c.Status(fiber.StatusOK).JSON(dto.MeOutput{
		Email:         claims.Email,
		Authenticated: true,
		LoginTime:     claims.IssuedAt.Time,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	// Overwrite with an expired cookie; the JWT itself simply ages out.
	h.setSessionCookie(c, "", -time.Hour)

	return c.Status(fiber.StatusOK).JSON(dto.MessageOutput{Message: "signed out"})
}

func (h *AuthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(dto.HealthOutput{
		Status:   "ok",
		Backends: h.backends.Status(c.Context()),
	})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, value string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     constant.SessionCookieName,
		Value:    value,
		Expires:  time.Now().Add(maxAge),
		HTTPOnly: true,
		Secure:   h.cfg.Env != "development",
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}
