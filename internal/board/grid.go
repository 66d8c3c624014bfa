// internal/board/grid.go
//
// Board data model for the kana match game.
// Defines:
//   - Tile: one cell's symbol plus a stable identity and the "new" flag.
//   - Grid: the rows x cols play surface.
//   - Pos, MatchGroup, Mask: coordinates, detected words, clear masks.
//   - Factory: tile creation from a symbol set with injectable randomness.
//
// Notes:
//   - Tile IDs exist so a renderer can key animations across mutations.
//     They are assigned once per creation and never reused.
//   - Grids are mutated in place by Swap and CollapseAndRefill; use Clone
//     for speculative work.

package board

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	mrand "math/rand/v2"
	"strings"

	"github.com/robalobadob/kanamatch/internal/lexicon"
)

// Tile is a single board cell.
type Tile struct {
	ID     string         `json:"id"`
	Symbol lexicon.Symbol `json:"kana"`
	IsNew  bool           `json:"isNew,omitempty"`
}

// Grid is a rectangular array of tiles, indexed [row][col].
type Grid [][]Tile

// Pos is a board coordinate.
type Pos struct {
	R int `json:"r"`
	C int `json:"c"`
}

// Dist returns the Manhattan distance between p and q.
func (p Pos) Dist(q Pos) int { return abs(p.R-q.R) + abs(p.C-q.C) }

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.R, p.C) }

// MatchGroup is one detected word: its cell positions in scan order.
type MatchGroup []Pos

// Mask flags cells to be cleared, indexed [row][col].
type Mask [][]bool

// NewMask returns an all-false rows x cols mask.
func NewMask(rows, cols int) Mask {
	m := make(Mask, rows)
	for r := range m {
		m[r] = make([]bool, cols)
	}
	return m
}

// MaskOf returns a rows x cols mask with every position of groups set.
func MaskOf(rows, cols int, groups ...MatchGroup) Mask {
	m := NewMask(rows, cols)
	for _, g := range groups {
		for _, p := range g {
			m[p.R][p.C] = true
		}
	}
	return m
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the number of columns, 0 for an empty grid.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// In reports whether p lies on the grid.
func (g Grid) In(p Pos) bool {
	return p.R >= 0 && p.R < g.Rows() && p.C >= 0 && p.C < g.Cols()
}

// At returns the tile at p. p must be on the grid.
func (g Grid) At(p Pos) Tile { return g[p.R][p.C] }

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = append([]Tile(nil), row...)
	}
	return out
}

// ClearNew drops the IsNew flag from every tile.
func (g Grid) ClearNew() {
	for r := range g {
		for c := range g[r] {
			g[r][c].IsNew = false
		}
	}
}

// Word returns the string spelled by the cells of m.
func (g Grid) Word(m MatchGroup) string {
	var sb strings.Builder
	for _, p := range m {
		sb.WriteString(string(g[p.R][p.C].Symbol))
	}
	return sb.String()
}

// Words returns the strings spelled by each group, in order.
func (g Grid) Words(groups []MatchGroup) []string {
	out := make([]string, len(groups))
	for i, m := range groups {
		out[i] = g.Word(m)
	}
	return out
}

// Symbols returns the grid contents as rows of strings, one symbol per cell.
func (g Grid) Symbols() [][]string {
	out := make([][]string, len(g))
	for r, row := range g {
		out[r] = make([]string, len(row))
		for c, t := range row {
			out[r][c] = string(t.Symbol)
		}
	}
	return out
}

func (g Grid) String() string {
	var sb strings.Builder
	for _, row := range g {
		for _, t := range row {
			sb.WriteString(string(t.Symbol))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ------------------------------- tiles -------------------------------------

// Rand is the part of math/rand/v2's *Rand the board needs.
// Tests substitute scripted sources.
type Rand interface {
	IntN(n int) int
}

// globalRand draws from math/rand/v2's goroutine-safe top-level source.
type globalRand struct{}

func (globalRand) IntN(n int) int { return mrand.IntN(n) }

// ErrNoSymbols is returned when a factory is built over an empty symbol set.
var ErrNoSymbols = errors.New("board: empty symbol set")

// Factory creates tiles by drawing uniformly from Symbols.
type Factory struct {
	Symbols []lexicon.Symbol
	Rand    Rand
}

// NewFactory returns a Factory over symbols. A nil rnd uses the
// process-wide random source.
func NewFactory(symbols []lexicon.Symbol, rnd Rand) (*Factory, error) {
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Factory{Symbols: append([]lexicon.Symbol(nil), symbols...), Rand: rnd}, nil
}

// NewTile creates a tile with a fresh identity.
func (f *Factory) NewTile(isNew bool) Tile {
	return Tile{
		ID:     randomID(),
		Symbol: f.Symbols[f.Rand.IntN(len(f.Symbols))],
		IsNew:  isNew,
	}
}

// NewGrid draws every cell of a rows x cols grid independently.
func (f *Factory) NewGrid(rows, cols int) Grid {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("board: invalid dimensions %dx%d", rows, cols))
	}
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]Tile, cols)
		for c := range g[r] {
			g[r][c] = f.NewTile(false)
		}
	}
	return g
}

// FromSymbols builds a grid from rows of symbol strings, giving every cell a
// fresh identity. Rows must all have the same length.
func FromSymbols(rows [][]string) Grid {
	g := make(Grid, len(rows))
	for r, row := range rows {
		if len(row) != len(rows[0]) {
			panic(fmt.Sprintf("board: ragged row %d", r))
		}
		g[r] = make([]Tile, len(row))
		for c, s := range row {
			g[r][c] = Tile{ID: randomID(), Symbol: lexicon.Symbol(s)}
		}
	}
	return g
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
