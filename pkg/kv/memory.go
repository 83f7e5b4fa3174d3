package kv

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value    []byte
	expireAt time.Time
	access   time.Time
}

func (m *memoryItem) expired(now time.Time) bool {
	return !m.expireAt.IsZero() && now.After(m.expireAt)
}

// MemoryStore implements Store in process memory with LRU eviction.
type MemoryStore struct {
	mu      sync.Mutex
	data    map[string]*memoryItem
	maxSize int
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	cfg := &MemoryConfig{MaxSize: 10000}
	for _, opt := range opts {
		opt(cfg)
	}
	return &MemoryStore{
		data:    make(map[string]*memoryItem),
		maxSize: cfg.MaxSize,
		now:     time.Now,
	}
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if _, exists := s.data[key]; !exists && len(s.data) >= s.maxSize {
		s.evictLRU()
	}

	item := &memoryItem{value: append([]byte(nil), value...), access: now}
	if ttl > 0 {
		item.expireAt = now.Add(ttl)
	}
	s.data[key] = item
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	item, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	if item.expired(now) {
		delete(s.data, key)
		return nil, ErrNotFound
	}
	item.access = now
	return append([]byte(nil), item.value...), nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.data[key]
	return ok && !item.expired(s.now()), nil
}

// Len returns the number of stored keys, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *MemoryStore) Close() error { return nil }

// evictLRU drops expired keys, or failing that the least recently used one.
// Caller holds s.mu.
func (s *MemoryStore) evictLRU() {
	now := s.now()
	var oldestKey string
	var oldest time.Time
	for key, item := range s.data {
		if item.expired(now) {
			delete(s.data, key)
			return
		}
		if oldestKey == "" || item.access.Before(oldest) {
			oldestKey = key
			oldest = item.access
		}
	}
	if oldestKey != "" {
		delete(s.data, oldestKey)
	}
}
