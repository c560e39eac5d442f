// internal/store/store.go
//
// Session persistence contract for the HTTP layer.
// Each player (browser) owns exactly one live session; Save replaces it, so
// a reset discards the previous game entirely. Finished games are never kept.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

// ErrNotFound is returned by Get when the player has no session.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for live sessions.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores s as the player's current session, replacing any previous one.
	Save(ctx context.Context, playerID string, s game.Session) error

	// Get returns the player's current session or ErrNotFound.
	Get(ctx context.Context, playerID string) (game.Session, error)

	// Update runs fn on the player's session and saves what it returns, with
	// no other Save or Update for that player in between. found is false when
	// the player has no session yet (cur is then the zero Session). An error
	// from fn aborts the update and is returned as is.
	Update(ctx context.Context, playerID string, fn UpdateFunc) (game.Session, error)

	// Close releases any underlying resources.
	Close() error
}

// UpdateFunc computes the next session from the current one.
type UpdateFunc func(cur game.Session, found bool) (game.Session, error)

// Open returns the Store named by driver ("memory" or "sqlite").
// dsn is the database path for sqlite and ignored for memory.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite", "sqlite3":
		return NewSQLiteStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}
