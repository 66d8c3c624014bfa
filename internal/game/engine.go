// internal/game/engine.go
//
// Match resolution and the game session.
// Responsibilities:
//   - TrySwap: validate a swap by the words it produces.
//   - Resolve: clear matched cells, settle, cascade, and replace dead boards.
//   - Game: create boards and apply player actions one at a time.
//
// Notes:
//   - Only the words of the first clear step are reported as Outcome.Words;
//     cascade groups are available separately in Outcome.Cascades.
//   - Both retry loops are bounded (board.MaxGenerateAttempts, MaxCascades)
//     so a single action always terminates.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanamatch/internal/board"
	"github.com/robalobadob/kanamatch/internal/lexicon"
)

const (
	// MaxCascades bounds the settle cycles triggered by refills.
	MaxCascades = 10

	MinSize = 2
	MaxSize = 16
)

var (
	ErrOutOfBounds = errors.New("position off the board")
	ErrInvalidSize = fmt.Errorf("board sides must be %d-%d cells", MinSize, MaxSize)
)

// TrySwap swaps a and b in g if that spells at least one word. A rejected
// swap leaves g unchanged.
func TrySwap(g board.Grid, a, b board.Pos, lex *lexicon.Trie) SwapResult {
	if !board.Swap(g, a, b) {
		return SwapResult{}
	}
	matches := board.FindWords(g, lex)
	if len(matches) == 0 {
		board.Swap(g, a, b)
		return SwapResult{}
	}
	return SwapResult{Accepted: true, Matches: matches}
}

// Resolve clears matches from g, settles it, and keeps clearing words made by
// the refill for at most MaxCascades cycles. If the final board has no legal
// move a fresh one is generated. g is modified in place.
func Resolve(g board.Grid, matches []board.MatchGroup, f *board.Factory, lex *lexicon.Trie) Resolution {
	rows, cols := g.Rows(), g.Cols()
	g = board.CollapseAndRefill(g, board.MaskOf(rows, cols, matches...), f)

	var res Resolution
	for res.CascadeCount < MaxCascades {
		found := board.FindWords(g, lex)
		if len(found) == 0 {
			break
		}
		g = board.CollapseAndRefill(g, board.MaskOf(rows, cols, found...), f)
		res.Cascades = append(res.Cascades, found)
		res.CascadeCount++
	}
	if res.CascadeCount == MaxCascades {
		log.Debug().Int("cascades", res.CascadeCount).Msg("cascade limit reached, accepting board")
	}

	if !board.HasLegalMove(g, lex) {
		log.Info().Int("rows", rows).Int("cols", cols).Msg("no legal move left, regenerating board")
		g, _ = board.Generate(rows, cols, f, lex)
		res.Regenerated = true
	}
	res.Grid = g
	return res
}

// New creates a game with a freshly generated rows x cols board.
// rnd may be nil for the process-wide random source; pass a seeded source
// for reproducible boards.
func New(rows, cols int, lex *lexicon.Trie, symbols []lexicon.Symbol, rnd board.Rand) (*Game, error) {
	if rows < MinSize || rows > MaxSize || cols < MinSize || cols > MaxSize {
		return nil, ErrInvalidSize
	}
	f, err := board.NewFactory(symbols, rnd)
	if err != nil {
		return nil, err
	}
	grid, _ := board.Generate(rows, cols, f, lex)
	return &Game{
		ID:      randomID(),
		Rows:    rows,
		Cols:    cols,
		Board:   grid,
		factory: f,
		lex:     lex,
	}, nil
}

// Swap applies a player's swap of a and b.
//
// Off-board positions are an error. Non-adjacent swaps and swaps that spell
// nothing are not errors: they return Outcome{Accepted: false} and leave the
// board as it was.
func (g *Game) Swap(a, b board.Pos) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.Board.In(a) || !g.Board.In(b) {
		return Outcome{}, ErrOutOfBounds
	}
	work := g.Board.Clone()
	sr := TrySwap(work, a, b, g.lex)
	if !sr.Accepted {
		return Outcome{}, nil
	}

	swapped := work.Clone()
	res := Resolve(work, sr.Matches, g.factory, g.lex)
	g.Board = res.Grid
	g.Moves++

	return Outcome{
		Accepted:     true,
		Words:        swapped.Words(sr.Matches),
		Matches:      sr.Matches,
		Swapped:      swapped,
		Board:        g.Board.Clone(),
		CascadeCount: res.CascadeCount,
		Cascades:     res.Cascades,
		Regenerated:  res.Regenerated,
	}, nil
}

// Settle marks every tile as no longer new, once the caller has finished
// animating the last refill, and returns the board.
func (g *Game) Settle() board.Grid {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Board.ClearNew()
	return g.Board.Clone()
}

// Hint returns a legal move on the current board, if there is one.
func (g *Game) Hint() (board.Move, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return board.FindLegalMove(g.Board, g.lex)
}

// Snapshot returns a copy of the game's public state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		ID:    g.ID,
		Rows:  g.Rows,
		Cols:  g.Cols,
		Daily: g.Daily,
		Moves: g.Moves,
		Board: g.Board.Clone(),
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
