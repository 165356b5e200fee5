package domain

//go:generate mockgen -destination=../../mocks/mock_store.go -package=mocks github.com/wicaksonoadi/magiclink-service/internal/auth/domain Store
//go:generate mockgen -destination=../../mocks/mock_mailer.go -package=mocks github.com/wicaksonoadi/magiclink-service/internal/auth/domain Mailer

import (
	"context"
	"time"
)

// Store is a key-value store with TTL semantics. Implementations must treat
// an expired key the same as an absent one.
type Store interface {
	// Set writes value under key, expiring after ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns the value for key, or autherror.ErrKeyNotFound if the key
	// is absent or expired.
	Get(ctx context.Context, key string) (string, error)
	// GetDel atomically reads and deletes key. Two concurrent calls for the
	// same key must not both observe the value.
	GetDel(ctx context.Context, key string) (string, error)
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}

type Mailer interface {
	SendMagicLink(ctx context.Context, to, link string) error
}
