package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wicaksonoadi/magiclink-service/internal/auth/domain"
	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
	"github.com/wicaksonoadi/magiclink-service/pkg/constant"
)

// RateLimiter throttles issuance per identity (IP or email) using keyed
// flags with a short TTL in the shared store. A flag's existence means the
// identity is inside its cooldown window.
type RateLimiter struct {
	store  domain.Store
	window time.Duration
}

func NewRateLimiter(store domain.Store, windowSeconds int) *RateLimiter {
	return &RateLimiter{
		store:  store,
		window: time.Duration(windowSeconds) * time.Second,
	}
}

// Check returns ErrTooManyRequests while a flag exists for the identity.
// Storage trouble fails open: a degraded backend must not lock users out
// of signing in.
func (rl *RateLimiter) Check(ctx context.Context, scope, identity string) error {
	_, err := rl.store.Get(ctx, rateKey(scope, identity))
	if err == nil {
		return autherror.ErrTooManyRequests
	}
	if !errors.Is(err, autherror.ErrKeyNotFound) {
		slog.Warn("rate limit check failed open", "scope", scope, "error", err)
	}

	return nil
}

// Mark records that the guarded action happened. The caller invokes it after
// a successful issuance, not before, so a failing downstream send does not
// consume the window. Best-effort: a write failure only loses one window.
func (rl *RateLimiter) Mark(ctx context.Context, scope, identity string) {
	if err := rl.store.Set(ctx, rateKey(scope, identity), "1", rl.window); err != nil {
		slog.Warn("rate limit mark failed", "scope", scope, "error", err)
	}
}

func rateKey(scope, identity string) string {
	return constant.RateKeyPrefix + scope + ":" + identity
}
