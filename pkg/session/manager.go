package session

import (
	"context"
	"sync"

	"log/slog"

	"github.com/aretw0/nous/internal/logging"
	"github.com/aretw0/nous/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes access to save slots. Concurrent hosts (one HTTP
// handler saving while another loads the same slot) go through per-slot
// mutexes; reference counting garbage-collects locks for idle slots.
type Manager struct {
	store ports.SaveStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a slot manager over the given save store.
func NewManager(store ports.SaveStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must Lock the entry.mu and pair with release(slot) after
// unlocking.
func (m *Manager) acquire(slot string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[slot]
	if !exists {
		entry = &lockEntry{}
		m.locks[slot] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(slot string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[slot]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, slot)
	}
}

// Load retrieves a slot payload under the slot lock.
func (m *Manager) Load(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := m.WithLock(ctx, slot, func(ctx context.Context) error {
		var err error
		data, err = m.store.Load(ctx, slot)
		return err
	})
	return data, err
}

// Save persists a slot payload under the slot lock.
func (m *Manager) Save(ctx context.Context, slot string, data []byte) error {
	return m.WithLock(ctx, slot, func(ctx context.Context) error {
		return m.store.Save(ctx, slot, data)
	})
}

// Delete removes the slot under the slot lock.
func (m *Manager) Delete(ctx context.Context, slot string) error {
	return m.WithLock(ctx, slot, func(ctx context.Context) error {
		return m.store.Delete(ctx, slot)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying save store.
func (m *Manager) Store() ports.SaveStore {
	return m.store
}

// WithLock executes fn while holding the lock for the slot.
func (m *Manager) WithLock(ctx context.Context, slot string, fn func(context.Context) error) error {
	entry := m.acquire(slot)
	entry.mu.Lock()
	m.logger.Debug("slot lock acquired", "slot", slot)
	defer func() {
		entry.mu.Unlock()
		m.release(slot)
		m.logger.Debug("slot lock released", "slot", slot)
	}()

	return fn(ctx)
}
