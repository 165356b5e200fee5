package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/wicaksonoadi/magiclink-service/internal/auth/domain"
	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
	"github.com/wicaksonoadi/magiclink-service/pkg/constant"
)

// tokenBytes gives 256 bits of randomness; collisions are treated as
// impossible, so there is no retry logic.
const tokenBytes = 32

// TokenStore issues and redeems single-use magic-link tokens. Durable
// storage is delegated to the injected store, which encapsulates the
// distributed/local failover policy.
type TokenStore struct {
	store domain.Store
	ttl   time.Duration
}

func NewTokenStore(store domain.Store, ttlMinutes int) *TokenStore {
	return &TokenStore{
		store: store,
		ttl:   time.Duration(ttlMinutes) * time.Minute,
	}
}

// Issue generates an opaque token bound to email and stores it with the
// configured TTL. It fails only when every storage backend is down.
func (ts *TokenStore) Issue(ctx context.Context, email string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	if err := ts.store.Set(ctx, constant.TokenKeyPrefix+token, email, ts.ttl); err != nil {
		return "", err
	}

	return token, nil
}

// Redeem consumes a token and returns the email it was bound to. Unknown,
// expired and already-used tokens are indistinguishable from the outside:
// all collapse to ErrInvalidToken so a caller probing the endpoint learns
// nothing about why a token failed.
func (ts *TokenStore) Redeem(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", autherror.ErrInvalidToken
	}

	email, err := ts.store.GetDel(ctx, constant.TokenKeyPrefix+token)
	if err != nil {
		return "", autherror.ErrInvalidToken
	}

	return email, nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
