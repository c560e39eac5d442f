// internal/store/memory.go
//
// In-memory implementation of the Store interface.
//
// Characteristics:
//   - Sessions are kept by value, so callers can never alias stored state.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex            // guards sessions map
	sessions map[string]game.Session // keyed by player ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]game.Session)}
}

func (m *memory) Save(ctx context.Context, playerID string, s game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[playerID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, playerID string) (game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[playerID]; ok {
		return s, nil
	}
	return game.Session{}, ErrNotFound
}

// Update holds the write lock across fn so concurrent updates serialize.
func (m *memory) Update(ctx context.Context, playerID string, fn UpdateFunc) (game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, found := m.sessions[playerID]
	next, err := fn(cur, found)
	if err != nil {
		return game.Session{}, err
	}
	m.sessions[playerID] = next
	return next, nil
}

func (m *memory) Close() error { return nil }
