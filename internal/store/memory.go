// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Game sessions are ephemeral: nothing survives a restart.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a bounded LRU cache, so
//     abandoned boards are evicted instead of accumulating.
//   - Concurrency-safe (the LRU cache locks internally).
//   - Get returns ErrNotFound for unknown or evicted IDs.

package store

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru"

	"github.com/robalobadob/kanamatch/internal/game"
)

// DefaultSize is the session capacity used when a non-positive size is given.
const DefaultSize = 1024

// ErrNotFound is returned by Get for unknown game IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID.
	// Returns ErrNotFound if the game is unknown or was evicted.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Len reports the number of stored games.
	Len() int
}

// memory is an LRU-backed Store implementation.
type memory struct {
	games *lru.Cache // keyed by Game.ID
}

// NewMemoryStore constructs an in-memory Store holding at most size games.
func NewMemoryStore(size int) (Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &memory{games: c}, nil
}

// Save adds or updates the game, marking it most recently used.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.games.Add(g.ID, g)
	return nil
}

// Get looks up a game by ID, marking it most recently used.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	if v, ok := m.games.Get(id); ok {
		return v.(*game.Game), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Len() int { return m.games.Len() }
