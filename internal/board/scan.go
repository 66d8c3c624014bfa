// internal/board/scan.go
//
// Word detection over rows and columns.
//
// Each line is swept once with a sliding window [start, i]. The window is
// shrunk from the left while its symbols are not a prefix of any word, and
// a match is recorded as soon as the window spells a word of at least two
// symbols. The scan then restarts after the match, so one axis never yields
// overlapping groups. This is greedy: a longer word that would complete
// later from the same start is not considered.
//
// Horizontal and vertical passes are independent; a cell may belong to a
// group on each axis.

package board

import "github.com/robalobadob/kanamatch/internal/lexicon"

// MinWordLen is the shortest run of symbols that counts as a match.
const MinWordLen = 2

// FindWords returns every horizontal group (rows top to bottom) followed by
// every vertical group (columns left to right).
func FindWords(g Grid, lex *lexicon.Trie) []MatchGroup {
	return scan(g, lex, 0)
}

// HasWords reports whether FindWords would return at least one group.
func HasWords(g Grid, lex *lexicon.Trie) bool {
	return len(scan(g, lex, 1)) > 0
}

// scan collects groups, stopping once limit groups are found (0 = all).
func scan(g Grid, lex *lexicon.Trie, limit int) []MatchGroup {
	rows, cols := g.Rows(), g.Cols()
	var out []MatchGroup
	buf := make([]lexicon.Symbol, 0, max(rows, cols))

	for r := 0; r < rows; r++ {
		out = scanLine(lex, cols, func(i int) Pos { return Pos{R: r, C: i} }, g, buf, out, limit)
		if limit > 0 && len(out) >= limit {
			return out
		}
	}
	for c := 0; c < cols; c++ {
		out = scanLine(lex, rows, func(i int) Pos { return Pos{R: i, C: c} }, g, buf, out, limit)
		if limit > 0 && len(out) >= limit {
			return out
		}
	}
	return out
}

// scanLine sweeps one row or column of n cells, addressed through at.
func scanLine(lex *lexicon.Trie, n int, at func(int) Pos, g Grid, buf []lexicon.Symbol, out []MatchGroup, limit int) []MatchGroup {
	current := buf[:0]
	start := 0
	for i := 0; i < n; i++ {
		current = append(current, g.At(at(i)).Symbol)
		for len(current) > 0 && !lex.HasPrefix(current) {
			current = current[1:]
			start++
		}
		if len(current) >= MinWordLen && lex.HasWord(current) {
			group := make(MatchGroup, 0, len(current))
			for k := start; k <= i; k++ {
				group = append(group, at(k))
			}
			out = append(out, group)
			if limit > 0 && len(out) >= limit {
				return out
			}
			current = current[:0]
			start = i + 1
		}
	}
	return out
}
