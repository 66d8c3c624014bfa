// internal/board/move.go
//
// Swap primitive and legal-move search.
//
// A move swaps two 4-directionally adjacent tiles. A move is legal when the
// board after the swap contains at least one word. Probing checks the right
// and down neighbour of every cell, which covers each adjacent pair once.

package board

import "github.com/robalobadob/kanamatch/internal/lexicon"

// Move is a swap of two adjacent cells.
type Move struct {
	From Pos `json:"from"`
	To   Pos `json:"to"`
}

// Swap exchanges the tiles at a and b in place, identity included.
// It returns false and leaves g untouched unless a and b are both on the
// grid and exactly one step apart.
func Swap(g Grid, a, b Pos) bool {
	if !g.In(a) || !g.In(b) || a.Dist(b) != 1 {
		return false
	}
	g[a.R][a.C], g[b.R][b.C] = g[b.R][b.C], g[a.R][a.C]
	return true
}

// HasLegalMove reports whether some adjacent swap produces a word.
func HasLegalMove(g Grid, lex *lexicon.Trie) bool {
	_, ok := FindLegalMove(g, lex)
	return ok
}

// FindLegalMove returns the first legal move in row-major probe order
// (right neighbour before down neighbour). g is not modified.
func FindLegalMove(g Grid, lex *lexicon.Trie) (Move, bool) {
	rows, cols := g.Rows(), g.Cols()
	probe := g.Clone()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			from := Pos{R: r, C: c}
			for _, to := range []Pos{{R: r, C: c + 1}, {R: r + 1, C: c}} {
				if !Swap(probe, from, to) {
					continue
				}
				hit := HasWords(probe, lex)
				Swap(probe, from, to)
				if hit {
					return Move{From: from, To: to}, true
				}
			}
		}
	}
	return Move{}, false
}
