package failover

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wicaksonoadi/magiclink-service/internal/auth/domain"
	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
)

// Store composes a distributed primary with a process-local fallback. The
// primary is optional: when nil (no Redis configured) every operation goes
// straight to the fallback. The primary is selected once at startup, never
// per call.
//
// Write policy: primary first, fallback on any primary error. Read policy:
// primary first, fallback on miss or error — a miss must consult the
// fallback because an earlier write may have landed there during an outage.
type Store struct {
	primary  domain.Store
	fallback domain.Store
}

func New(primary, fallback domain.Store) *Store {
	return &Store{primary: primary, fallback: fallback}
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if s.primary != nil {
		err := s.primary.Set(ctx, key, value, ttl)
		if err == nil {
			return nil
		}
		slog.Warn("primary store write failed, falling back", "key", key, "error", err)
	}

	if err := s.fallback.Set(ctx, key, value, ttl); err != nil {
		return autherror.ErrStorageUnavailable
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if s.primary != nil {
		val, err := s.primary.Get(ctx, key)
		if err == nil {
			return val, nil
		}
		if !errors.Is(err, autherror.ErrKeyNotFound) {
			slog.Warn("primary store read failed, falling back", "key", key, "error", err)
		}
	}

	return s.fallback.Get(ctx, key)
}

func (s *Store) GetDel(ctx context.Context, key string) (string, error) {
	if s.primary != nil {
		val, err := s.primary.GetDel(ctx, key)
		if err == nil {
			return val, nil
		}
		if !errors.Is(err, autherror.ErrKeyNotFound) {
			slog.Warn("primary store read failed, falling back", "key", key, "error", err)
		}
	}

	return s.fallback.GetDel(ctx, key)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	var primaryErr error
	if s.primary != nil {
		primaryErr = s.primary.Delete(ctx, key)
	}

	// Delete from both stores; the key may exist in either.
	if err := s.fallback.Delete(ctx, key); err != nil {
		return err
	}

	return primaryErr
}

func (s *Store) Ping(ctx context.Context) error {
	if s.primary != nil {
		if err := s.primary.Ping(ctx); err == nil {
			return nil
		}
	}

	return s.fallback.Ping(ctx)
}

// Status reports per-backend liveness for the health endpoint.
func (s *Store) Status(ctx context.Context) domain.BackendStatus {
	st := domain.BackendStatus{Distributed: "disabled", Local: "ok"}

	if s.primary != nil {
		if err := s.primary.Ping(ctx); err != nil {
			st.Distributed = "unavailable"
		} else {
			st.Distributed = "ok"
		}
	}
	if err := s.fallback.Ping(ctx); err != nil {
		st.Local = "unavailable"
	}

	return st
}
