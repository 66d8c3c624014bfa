// internal/lexicon/tokenize.go
//
// Splitting of dictionary words into board Symbols.
//
// A word is cut so that it lines up with the tiles that can spell it:
// multi-rune alphabet entries (e.g. "きゃ") are taken longest-first, and
// everything else is split on extended grapheme cluster boundaries so a
// combining mark never ends up as a tile of its own.

package lexicon

import (
	"sort"
	"strings"

	"github.com/rivo/uniseg"
)

// Tokenize splits word into Symbols, preferring the longest multi-rune
// entry of alphabet at each position.
func Tokenize(word string, alphabet []Symbol) []Symbol {
	multi := multiRune(alphabet)
	out := make([]Symbol, 0, len(word)/3+1)

	rest := word
	for rest != "" {
		if s, ok := longestPrefix(rest, multi); ok {
			out = append(out, s)
			rest = rest[len(s):]
			continue
		}
		cluster, tail, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
		out = append(out, Symbol(cluster))
		rest = tail
	}
	return out
}

// BuildStrings tokenizes every word against alphabet and builds a lexicon.
func BuildStrings(words []string, alphabet []Symbol) *Trie {
	t := New()
	for _, w := range words {
		t.Insert(Tokenize(w, alphabet))
	}
	return t
}

// Join concatenates symbols back into a string.
func Join(seq []Symbol) string {
	var sb strings.Builder
	for _, s := range seq {
		sb.WriteString(string(s))
	}
	return sb.String()
}

// multiRune returns the alphabet entries spanning more than one grapheme
// cluster, longest first.
func multiRune(alphabet []Symbol) []Symbol {
	var out []Symbol
	for _, s := range alphabet {
		if uniseg.GraphemeClusterCount(string(s)) > 1 {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

func longestPrefix(s string, candidates []Symbol) (Symbol, bool) {
	for _, c := range candidates {
		if strings.HasPrefix(s, string(c)) {
			return c, true
		}
	}
	return "", false
}
