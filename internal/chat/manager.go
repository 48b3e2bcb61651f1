package chat

import (
	"context"
	"sync"
)

// Manager hands out one shared Store per user identity, so every consumer
// of the same user's chat state observes the same object. Switching users
// swaps the whole store; lists are never merged across identities.
type Manager struct {
	adapter Adapter
	cfg     Config

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a manager backed by the given adapter.
func NewManager(adapter Adapter, cfg Config) *Manager {
	return &Manager{
		adapter: adapter,
		cfg:     cfg,
		stores:  make(map[string]*Store),
	}
}

// ForUser returns the user's store, creating and activating it on first use.
func (m *Manager) ForUser(ctx context.Context, userID string) (*Store, error) {
	if userID == "" {
		return nil, ErrNoUser
	}

	m.mu.Lock()
	store, ok := m.stores[userID]
	if !ok {
		store = NewStore(m.adapter, m.cfg)
		m.stores[userID] = store
	}
	m.mu.Unlock()

	if err := store.Activate(ctx, userID); err != nil {
		return nil, err
	}
	return store, nil
}

// Release drops the in-memory store for a user, e.g. on logout. Persisted
// state is untouched; the next ForUser reloads it.
func (m *Manager) Release(userID string) {
	m.mu.Lock()
	delete(m.stores, userID)
	m.mu.Unlock()
}
