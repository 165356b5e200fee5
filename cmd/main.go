package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/wicaksonoadi/magiclink-service/config"
	"github.com/wicaksonoadi/magiclink-service/db"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/domain"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/handler"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/repository/failover"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/repository/memstore"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/repository/redisstore"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/service"
	"github.com/wicaksonoadi/magiclink-service/internal/mailer"
)

func main() {
	cfg := config.Load()

	local := memstore.New()
	defer local.Close()

	var primary domain.Store
	if cfg.RedisURL != "" {
		client, err := db.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, serving from local store only", "error", err)
		} else {
			primary = redisstore.New(client)
			slog.Info("redis connected")
		}
	}

	storage := failover.New(primary, local)
	tokens := service.NewTokenStore(storage, cfg.TokenTTLMin)
	limiter := service.NewRateLimiter(storage, cfg.RateLimitWindowSec)
	mail := mailer.NewResend(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppName, cfg.Env == "development")
	magicLink := service.NewMagicLinkService(tokens, limiter, mail, cfg.BaseURL)
	sessions := service.NewSessionService(cfg.SessionSecret, cfg.SessionTTLDays)
	authHandler := handler.NewAuthHandler(magicLink, sessions, storage, cfg)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
