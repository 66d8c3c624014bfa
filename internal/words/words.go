// internal/words/words.go
//
// Dictionary management for the game engine.
//
// Responsibilities:
//   - Parse word lists (kana plus optional romaji/english/kanji/emoji).
//   - Build the board alphabet and the lexicon used for word detection.
//   - Look up a matched word's meaning for display.
//
// Word lists are tab-separated, one word per line:
//
//	kana<TAB>romaji<TAB>english<TAB>kanji<TAB>emoji
//
// Only kana is required. Blank lines and lines starting with '#' are skipped.
//
// Sources (chosen by main):
//   - the embedded default list (default_words.tsv),
//   - a file (WORDS_FILE),
//   - the SQLite words table (WORDS_DB, see sqlstore.go).

package words

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/kanamatch/assets"
	"github.com/robalobadob/kanamatch/internal/lexicon"
)

//go:embed default_words.tsv
var embeddedWords string

// ErrEmpty is returned when a source yields no usable words.
var ErrEmpty = errors.New("words: dictionary is empty")

// Entry describes one dictionary word.
type Entry struct {
	Kana    string `json:"kana"`
	Romaji  string `json:"romaji,omitempty"`
	English string `json:"english,omitempty"`
	Kanji   string `json:"kanji,omitempty"`
	Emoji   string `json:"emoji,omitempty"`
}

// Dictionary is an immutable word list with its lexicon and alphabet.
type Dictionary struct {
	entries  []Entry
	byKana   map[string]Entry
	alphabet []lexicon.Symbol
	lex      *lexicon.Trie
}

// New builds a dictionary from entries. alphabet is the set of symbols the
// board draws from; symbols that appear in a word but not in alphabet are
// appended so that every word can be spelled. Duplicate kana keep the first
// entry.
func New(entries []Entry, alphabet []lexicon.Symbol) (*Dictionary, error) {
	d := &Dictionary{byKana: make(map[string]Entry, len(entries))}

	seen := make(map[lexicon.Symbol]bool, len(alphabet))
	for _, s := range alphabet {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		d.alphabet = append(d.alphabet, s)
	}

	d.lex = lexicon.New()
	for _, e := range entries {
		e.Kana = strings.TrimSpace(e.Kana)
		if e.Kana == "" {
			continue
		}
		if _, dup := d.byKana[e.Kana]; dup {
			continue
		}
		seq := lexicon.Tokenize(e.Kana, d.alphabet)
		if len(seq) < 2 {
			// Single-symbol words can never match on the board.
			continue
		}
		for _, s := range seq {
			if !seen[s] {
				seen[s] = true
				d.alphabet = append(d.alphabet, s)
			}
		}
		d.lex.Insert(seq)
		d.byKana[e.Kana] = e
		d.entries = append(d.entries, e)
	}
	if len(d.entries) == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// Default returns the embedded starter dictionary over alphabet.
func Default(alphabet []lexicon.Symbol) (*Dictionary, error) {
	entries, err := Parse(strings.NewReader(embeddedWords))
	if err != nil {
		return nil, err
	}
	return New(entries, alphabet)
}

// DefaultEntries returns the embedded starter word list.
func DefaultEntries() ([]Entry, error) {
	return Parse(strings.NewReader(embeddedWords))
}

// LoadFile reads a word list from path.
func LoadFile(path string, alphabet []lexicon.Symbol) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return New(entries, alphabet)
}

// Parse reads tab-separated entries from r.
func Parse(r io.Reader) ([]Entry, error) {
	var out []Entry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if t := strings.TrimSpace(line); t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		// Split before trimming so an empty kana column stays empty.
		f := strings.Split(line, "\t")
		for i := range f {
			f[i] = strings.TrimSpace(f[i])
		}
		f = append(f, make([]string, 5)...)
		if f[0] == "" {
			continue
		}
		out = append(out, Entry{Kana: f[0], Romaji: f[1], English: f[2], Kanji: f[3], Emoji: f[4]})
	}
	return out, sc.Err()
}

// DefaultAlphabet returns the embedded level 1 kana set.
func DefaultAlphabet() ([]lexicon.Symbol, error) {
	lines, err := assets.KanaLevel1()
	if err != nil {
		return nil, err
	}
	return toSymbols(lines), nil
}

// ParseAlphabet splits a configured symbol list on commas and whitespace.
func ParseAlphabet(s string) []lexicon.Symbol {
	return toSymbols(strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	}))
}

func toSymbols(list []string) []lexicon.Symbol {
	out := make([]lexicon.Symbol, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, lexicon.Symbol(s))
		}
	}
	return out
}

// Lookup returns the entry for a matched kana string.
func (d *Dictionary) Lookup(kana string) (Entry, bool) {
	e, ok := d.byKana[kana]
	return e, ok
}

// Lexicon returns the prefix tree over all words.
func (d *Dictionary) Lexicon() *lexicon.Trie { return d.lex }

// Alphabet returns the symbols boards are drawn from.
func (d *Dictionary) Alphabet() []lexicon.Symbol {
	return append([]lexicon.Symbol(nil), d.alphabet...)
}

// Entries returns every word in load order.
func (d *Dictionary) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}

// Stats returns counts of loaded words and board symbols.
func (d *Dictionary) Stats() (wordCount int, symbolCount int) {
	return len(d.entries), len(d.alphabet)
}
