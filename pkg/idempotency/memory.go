package idempotency

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore keeps keys in a bounded expiring LRU. Used when no Redis is configured;
// keys are not shared between replicas.
type MemoryStore struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, string]
}

func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (s *MemoryStore) Reserve(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cache.Get(key); ok {
		return false, nil
	}
	s.cache.Add(key, Pending)
	return true, nil
}

func (s *MemoryStore) Complete(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(key, value)
	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(key)
	return nil
}
