// internal/board/generate.go
//
// Starting board synthesis.
//
// Boards are drawn cell by cell until one contains no word and has at least
// one legal move. After MaxGenerateAttempts draws the last board is returned
// as is: unlucky randomness must never hang or fail the caller, and the
// match-resolution pass corrects a bad board on the next accepted move.

package board

import (
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kanamatch/internal/lexicon"
)

// MaxGenerateAttempts bounds the number of boards drawn by Generate.
const MaxGenerateAttempts = 200

// Generate returns a rows x cols board drawn from f. ok is false when the
// attempt limit was reached and the board may contain a word or lack a
// legal move.
func Generate(rows, cols int, f *Factory, lex *lexicon.Trie) (g Grid, ok bool) {
	for attempt := 1; attempt <= MaxGenerateAttempts; attempt++ {
		g = f.NewGrid(rows, cols)
		if found := FindWords(g, lex); len(found) > 0 {
			if e := log.Debug(); e.Enabled() {
				e.Int("attempt", attempt).Strs("words", g.Words(found)).Msg("board rejected: contains words")
			}
			continue
		}
		if HasLegalMove(g, lex) {
			return g, true
		}
		log.Debug().Int("attempt", attempt).Msg("board rejected: no legal move")
	}
	log.Warn().
		Int("attempts", MaxGenerateAttempts).
		Int("rows", rows).
		Int("cols", cols).
		Msg("board generation safety limit reached, using current board")
	return g, false
}
