package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pledgewall/internal/platform/kv"
)

// Store is an in-memory kv.Store used by tests and DSN-less development.
// A single mutex makes every commit trivially atomic.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string][]byte),
	}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *Store) List(_ context.Context, prefix string) ([]kv.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]kv.Entry, 0)
	for key, value := range s.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		items = append(items, kv.Entry{
			Key:   key,
			Value: append([]byte(nil), value...),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Key < items[j].Key
	})
	return items, nil
}

func (s *Store) Commit(_ context.Context, ops []kv.Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range ops {
		if op.Delete {
			delete(s.entries, op.Key)
			continue
		}
		s.entries[op.Key] = append([]byte(nil), op.Value...)
	}
	return nil
}

// Len reports the number of stored keys, for test assertions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ kv.Store = (*Store)(nil)
