package redisstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wicaksonoadi/magiclink-service/internal/auth/repository/redisstore"
	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
)

func newTestStore(t *testing.T) *redisstore.Store {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test: Redis not available (%v)", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return redisstore.New(client)
}

func TestStore_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		key := fmt.Sprintf("it_token_%d", time.Now().UnixNano())
		require.NoError(t, s.Set(ctx, key, "user@example.com", time.Minute))

		val, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", val)

		require.NoError(t, s.Delete(ctx, key))
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "it_missing")
		assert.ErrorIs(t, err, autherror.ErrKeyNotFound)
	})

	t.Run("getdel consumes", func(t *testing.T) {
		key := fmt.Sprintf("it_getdel_%d", time.Now().UnixNano())
		require.NoError(t, s.Set(ctx, key, "v", time.Minute))

		val, err := s.GetDel(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "v", val)

		_, err = s.GetDel(ctx, key)
		assert.ErrorIs(t, err, autherror.ErrKeyNotFound)
	})

	t.Run("server-side expiry", func(t *testing.T) {
		key := fmt.Sprintf("it_exp_%d", time.Now().UnixNano())
		require.NoError(t, s.Set(ctx, key, "v", time.Second))

		time.Sleep(1100 * time.Millisecond)

		_, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, autherror.ErrKeyNotFound)
	})

	t.Run("delete idempotent", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, "it_never_set"))
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}
