package memstore

import (
	"context"
	"sync"
	"time"

	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Store is an in-process key-value store with TTL semantics. It is shared
// mutable state across all request handlers and is guarded by a single mutex;
// contention is negligible at this scale.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	done    chan struct{}
	once    sync.Once
}

func New() *Store {
	s := &Store{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}

	// Expired entries are dropped lazily on read; the janitor keeps the map
	// from growing unbounded when keys are never read again.
	go s.janitor()

	return s
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", autherror.ErrKeyNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", autherror.ErrKeyNotFound
	}

	return e.value, nil
}

// GetDel reads and deletes under one lock acquisition, so two concurrent
// calls for the same key cannot both observe the value.
func (s *Store) GetDel(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", autherror.ErrKeyNotFound
	}
	delete(s.entries, key)
	if time.Now().After(e.expiresAt) {
		return "", autherror.ErrKeyNotFound
	}

	return e.value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Close stops the janitor goroutine. Safe to call more than once.
func (s *Store) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Store) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}
