// internal/game/types.go
//
// Core type definitions for the kana match game session.
// Defines:
//   - SwapResult / Resolution: outputs of the two orchestration steps.
//   - Outcome: what a single player action produced, for the caller.
//   - Game: state for one in-progress board.
//   - Snapshot: a consistent, serialisable copy of a Game.

package game

import (
	"sync"

	"github.com/robalobadob/kanamatch/internal/board"
	"github.com/robalobadob/kanamatch/internal/lexicon"
)

// SwapResult reports whether a swap was accepted and the words it made.
type SwapResult struct {
	Accepted bool
	Matches  []board.MatchGroup
}

// Resolution is the board after clearing, settling and cascading.
type Resolution struct {
	Grid         board.Grid
	CascadeCount int                  // settle cycles triggered by refills
	Cascades     [][]board.MatchGroup // groups cleared by each cascade step
	Regenerated  bool                 // the settled board was dead and replaced
}

// Outcome is the result of Game.Swap.
type Outcome struct {
	Accepted     bool                 `json:"accepted"`
	Words        []string             `json:"words,omitempty"`   // first clear step only
	Matches      []board.MatchGroup   `json:"matches,omitempty"` // positions on Swapped
	Swapped      board.Grid           `json:"swapped,omitempty"` // board after the swap, before clearing
	Board        board.Grid           `json:"board,omitempty"`   // board after resolution
	CascadeCount int                  `json:"cascadeCount"`
	Cascades     [][]board.MatchGroup `json:"cascades,omitempty"`
	Regenerated  bool                 `json:"regenerated"`
}

// Game holds the state of a single board session.
// Player actions are serialised by mu; the board core itself does no locking.
type Game struct {
	mu sync.Mutex

	ID    string     // Unique game identifier (random hex string).
	Rows  int        // Board height.
	Cols  int        // Board width.
	Daily string     // Date key (YYYY-MM-DD) for daily boards, empty otherwise.
	Board board.Grid // Current board.
	Moves int        // Accepted swaps so far.

	factory *board.Factory
	lex     *lexicon.Trie
}

// Snapshot is a copy of a Game's public state.
type Snapshot struct {
	ID    string     `json:"gameId"`
	Rows  int        `json:"rows"`
	Cols  int        `json:"cols"`
	Daily string     `json:"daily,omitempty"`
	Moves int        `json:"moves"`
	Board board.Grid `json:"board"`
}
