package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wicaksonoadi/magiclink-service/internal/auth/repository/memstore"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/service"
	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
	"github.com/wicaksonoadi/magiclink-service/internal/mocks"
	"github.com/wicaksonoadi/magiclink-service/pkg/constant"
)

func TestRateLimiter_AllowThenThrottle(t *testing.T) {
	store := memstore.New()
	defer store.Close()
	rl := service.NewRateLimiter(store, 60)
	ctx := context.Background()

	require.NoError(t, rl.Check(ctx, constant.ScopeEmail, "a@x.com"))

	rl.Mark(ctx, constant.ScopeEmail, "a@x.com")

	err := rl.Check(ctx, constant.ScopeEmail, "a@x.com")
	assert.ErrorIs(t, err, autherror.ErrTooManyRequests)
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	store := memstore.New()
	defer store.Close()
	rl := service.NewRateLimiter(store, 1)
	ctx := context.Background()

	rl.Mark(ctx, constant.ScopeIP, "10.0.0.1")
	assert.ErrorIs(t, rl.Check(ctx, constant.ScopeIP, "10.0.0.1"), autherror.ErrTooManyRequests)

	time.Sleep(1100 * time.Millisecond)

	assert.NoError(t, rl.Check(ctx, constant.ScopeIP, "10.0.0.1"))
}

func TestRateLimiter_IndependentKeys(t *testing.T) {
	store := memstore.New()
	defer store.Close()
	rl := service.NewRateLimiter(store, 60)
	ctx := context.Background()

	rl.Mark(ctx, constant.ScopeEmail, "a@x.com")

	// A flag for one identity must not throttle others, nor the same
	// identity under a different scope.
	assert.NoError(t, rl.Check(ctx, constant.ScopeEmail, "b@x.com"))
	assert.NoError(t, rl.Check(ctx, constant.ScopeIP, "a@x.com"))
}

func TestRateLimiter_FailsOpenOnStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	rl := service.NewRateLimiter(store, 60)

	store.EXPECT().
		Get(gomock.Any(), "rate:ip:10.0.0.1").
		Return("", errors.New("connection refused"))

	assert.NoError(t, rl.Check(context.Background(), constant.ScopeIP, "10.0.0.1"))
}

func TestRateLimiter_MarkWritesWindowTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockStore(ctrl)
	rl := service.NewRateLimiter(store, 60)

	store.EXPECT().
		Set(gomock.Any(), "rate:email:a@x.com", "1", time.Minute).
		Return(nil)

	rl.Mark(context.Background(), constant.ScopeEmail, "a@x.com")
}
