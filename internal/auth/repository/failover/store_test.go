package failover_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wicaksonoadi/magiclink-service/internal/auth/repository/failover"
	"github.com/wicaksonoadi/magiclink-service/internal/auth/repository/memstore"
	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
	"github.com/wicaksonoadi/magiclink-service/internal/mocks"
)

var errBackend = errors.New("connection refused")

func TestStore_NoPrimary(t *testing.T) {
	local := memstore.New()
	defer local.Close()
	s := failover.New(nil, local)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

	val, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	st := s.Status(ctx)
	assert.Equal(t, "disabled", st.Distributed)
	assert.Equal(t, "ok", st.Local)
}

func TestStore_PrimaryPreferred(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mocks.NewMockStore(ctrl)
	local := memstore.New()
	defer local.Close()
	s := failover.New(primary, local)
	ctx := context.Background()

	primary.EXPECT().Set(gomock.Any(), "k", "v", time.Minute).Return(nil)
	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

	primary.EXPECT().Get(gomock.Any(), "k").Return("v", nil)
	val, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	// The write never reached the local store.
	_, err = local.Get(ctx, "k")
	assert.ErrorIs(t, err, autherror.ErrKeyNotFound)
}

func TestStore_SetFallsBackOnPrimaryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mocks.NewMockStore(ctrl)
	local := memstore.New()
	defer local.Close()
	s := failover.New(primary, local)
	ctx := context.Background()

	primary.EXPECT().Set(gomock.Any(), "k", "v", time.Minute).Return(errBackend)
	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))

	// Read path consults the fallback after a primary miss.
	primary.EXPECT().Get(gomock.Any(), "k").Return("", autherror.ErrKeyNotFound)
	val, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestStore_GetDelFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mocks.NewMockStore(ctrl)
	local := memstore.New()
	defer local.Close()
	s := failover.New(primary, local)
	ctx := context.Background()

	require.NoError(t, local.Set(ctx, "k", "v", time.Minute))

	primary.EXPECT().GetDel(gomock.Any(), "k").Return("", errBackend)
	val, err := s.GetDel(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	primary.EXPECT().GetDel(gomock.Any(), "k").Return("", autherror.ErrKeyNotFound)
	_, err = s.GetDel(ctx, "k")
	assert.ErrorIs(t, err, autherror.ErrKeyNotFound)
}

func TestStore_SetBothFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mocks.NewMockStore(ctrl)
	fallback := mocks.NewMockStore(ctrl)
	s := failover.New(primary, fallback)

	primary.EXPECT().Set(gomock.Any(), "k", "v", time.Minute).Return(errBackend)
	fallback.EXPECT().Set(gomock.Any(), "k", "v", time.Minute).Return(errBackend)

	err := s.Set(context.Background(), "k", "v", time.Minute)
	assert.ErrorIs(t, err, autherror.ErrStorageUnavailable)
}

func TestStore_DeleteRemovesFromBoth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mocks.NewMockStore(ctrl)
	local := memstore.New()
	defer local.Close()
	s := failover.New(primary, local)
	ctx := context.Background()

	require.NoError(t, local.Set(ctx, "k", "v", time.Minute))

	primary.EXPECT().Delete(gomock.Any(), "k").Return(nil)
	require.NoError(t, s.Delete(ctx, "k"))

	_, err := local.Get(ctx, "k")
	assert.ErrorIs(t, err, autherror.ErrKeyNotFound)
}

func TestStore_StatusReportsUnavailablePrimary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	primary := mocks.NewMockStore(ctrl)
	local := memstore.New()
	defer local.Close()
	s := failover.New(primary, local)

	primary.EXPECT().Ping(gomock.Any()).Return(errBackend)

	st := s.Status(context.Background())
	assert.Equal(t, "unavailable", st.Distributed)
	assert.Equal(t, "ok", st.Local)
}
