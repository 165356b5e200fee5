package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
)

// opTimeout bounds every Redis call so a degraded backend cannot stall
// request handling; on expiry the caller falls back to the local store.
const opTimeout = 3 * time.Second

// Store implements the key-value contract on a shared Redis client. The
// client is long-lived and opened once at process start; reconnection is
// handled internally by go-redis.
type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", autherror.ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}

	return val, nil
}

// GetDel uses the GETDEL command, atomic on the server side, so concurrent
// redemptions of the same token cannot both succeed.
func (s *Store) GetDel(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	val, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", autherror.ErrKeyNotFound
		}
		return "", fmt.Errorf("redis getdel %s: %w", key, err)
	}

	return val, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return s.client.Ping(ctx).Err()
}
