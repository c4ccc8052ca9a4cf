package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	state     string
	expiresAt time.Time
}

// MemoryStore implements StateStore with an in-process map.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ticker  *time.Ticker
	done    chan struct{}
}

// NewMemoryStore creates an in-memory state store. With a positive
// cleanupInterval a background goroutine evicts expired entries; abandoned
// login attempts otherwise leak until process restart.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

func (m *MemoryStore) Put(ctx context.Context, key, state string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{
		state:     state,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (m *MemoryStore) Pop(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", ErrStateNotFound
	}

	// Single-use: remove before looking at expiry so the nonce is gone either way.
	delete(m.entries, key)

	if time.Now().After(e.expiresAt) {
		return "", ErrStateNotFound
	}

	return e.state, nil
}

// Close stops the cleanup goroutine.
func (m *MemoryStore) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
		close(m.done)
	}
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.deleteExpired()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryStore) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
		}
	}
}
