// Package cache provides a get-or-refresh TTL cache: a fresh entry is served
// without touching the fetcher, an expired entry triggers a refresh, and a
// failed refresh falls back to the stale value when one exists. Expired
// entries are deliberately retained for that fallback.
package cache

import (
	"context"
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	cachedAt time.Time
}

type Store[V any] struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry[V]

	now func() time.Time // test seam
}

func New[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		ttl: ttl,
		m:   make(map[string]entry[V]),
		now: time.Now,
	}
}

// Get returns the cached value for key while it is fresh; otherwise it calls
// fetch, stores the result and returns it. When fetch fails and a stale value
// exists, the stale value is returned with a nil error; with no cached value
// at all, the fetch error surfaces.
func (s *Store[V]) Get(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, error) {
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()

	if ok && s.now().Sub(e.cachedAt) < s.ttl {
		return e.value, nil
	}

	v, err := fetch(ctx)
	if err != nil {
		if ok {
			return e.value, nil
		}
		var zero V
		return zero, err
	}

	s.mu.Lock()
	s.m[key] = entry[V]{value: v, cachedAt: s.now()}
	s.mu.Unlock()
	return v, nil
}

// Invalidate drops one key so the next Get refetches. Used after admin
// catalog mutations.
func (s *Store[V]) Invalidate(key string) {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}
