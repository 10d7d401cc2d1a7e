package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// storageKey is the fixed key the identifier persists under.
const storageKey = "sessionId"

// Manager owns the anonymous session identifier: generated once, persisted
// before first use, never regenerated while the store holds a value.
// Uniqueness only needs to be overwhelmingly probable, not cryptographic.
type Manager struct {
	store Store

	mu     sync.Mutex
	cached string
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// SessionID returns the session identifier, lazily initializing it on
// first access. Sequential calls within one storage scope always return
// the identical value.
func (m *Manager) SessionID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != "" {
		return m.cached, nil
	}

	value, ok, err := m.store.Get(ctx, storageKey)
	if err != nil {
		return "", fmt.Errorf("reading session id: %w", err)
	}
	if ok && value != "" {
		m.cached = value
		return value, nil
	}

	generated := newSessionID()
	if err := m.store.Put(ctx, storageKey, generated); err != nil {
		return "", fmt.Errorf("persisting session id: %w", err)
	}
	m.cached = generated
	return generated, nil
}

func newSessionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
}
