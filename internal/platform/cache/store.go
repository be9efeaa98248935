package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type entryState int

const (
	statePopulating entryState = iota
	stateFresh
)

// entry is the per-key state machine: a key is either absent, Populating
// (one loader in flight, waiters share its outcome), or Fresh until
// expiresAt. Failed loads are never stored, so the next call retries.
type entry struct {
	state     entryState
	value     any
	err       error
	expiresAt time.Time
	done      chan struct{}
}

// Store memoizes expensive remote fetches with a per-call TTL and
// single-flight population per key. Different keys populate independently.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (s *Store) Get(key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.state != stateFresh {
		return nil, false
	}
	if !e.expiresAt.After(s.now()) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

func (s *Store) Delete(key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	if e, ok := s.entries[key]; ok && e.state == stateFresh {
		delete(s.entries, key)
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, or runs loader exactly once for
// all concurrent callers. The TTL is measured from successful population. A
// loader failure is handed to every waiter and not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && e.state == stateFresh {
		if e.expiresAt.After(s.now()) {
			value := e.value
			s.mu.Unlock()
			return value, nil
		}
		delete(s.entries, key)
		ok = false
	}

	if ok && e.state == statePopulating {
		done := e.done
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return e.value, e.err
	}

	e = &entry{state: statePopulating, done: make(chan struct{})}
	s.entries[key] = e
	s.mu.Unlock()

	value, err := loader(ctx)

	s.mu.Lock()
	if err != nil {
		e.err = err
		delete(s.entries, key)
	} else {
		e.state = stateFresh
		e.value = value
		if ttl > 0 {
			e.expiresAt = s.now().Add(ttl)
		} else {
			// Zero TTL means the value is usable only by in-flight waiters.
			e.expiresAt = s.now()
		}
	}
	close(e.done)
	s.mu.Unlock()

	return value, err
}

// Len reports the number of fresh entries, for tests and the health endpoint.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	now := s.now()
	for _, e := range s.entries {
		if e.state == stateFresh && e.expiresAt.After(now) {
			n++
		}
	}
	return n
}
