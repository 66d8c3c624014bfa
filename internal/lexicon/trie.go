// internal/lexicon/trie.go
//
// Prefix tree over board symbols.
// Responsibilities:
//   - Insert words as sequences of Symbols (idempotent).
//   - Answer "is this a prefix of some word" and "is this exactly a word".
//
// Notes:
//   - Built once at startup, read-only afterwards; concurrent readers are safe.
//   - There is no delete operation.

package lexicon

// Symbol is one atomic unit of board content: a kana, or a grapheme cluster
// that is always placed and matched as a whole.
type Symbol string

// Trie is a lexicon. The zero value is empty.
type Trie struct {
	root node
	size int // distinct words
}

// node is one position in the prefix tree.
type node struct {
	children map[Symbol]*node
	word     bool
}

// New returns an empty lexicon.
func New() *Trie {
	return &Trie{}
}

// Build constructs a lexicon holding every word in words.
func Build(words [][]Symbol) *Trie {
	t := New()
	for _, w := range words {
		t.Insert(w)
	}
	return t
}

// Insert adds word to the trie. Re-inserting an existing word is a no-op.
// Empty words are ignored.
func (t *Trie) Insert(word []Symbol) {
	if len(word) == 0 {
		return
	}
	n := &t.root
	for _, s := range word {
		if n.children == nil {
			n.children = make(map[Symbol]*node)
		}
		next, ok := n.children[s]
		if !ok {
			next = &node{}
			n.children[s] = next
		}
		n = next
	}
	if !n.word {
		n.word = true
		t.size++
	}
}

// walk follows seq from the root and returns the node it ends on, or nil.
func (t *Trie) walk(seq []Symbol) *node {
	n := &t.root
	for _, s := range seq {
		next, ok := n.children[s]
		if !ok {
			return nil
		}
		n = next
	}
	return n
}

// HasPrefix reports whether seq is a prefix of at least one word.
// The empty sequence is a prefix of everything.
func (t *Trie) HasPrefix(seq []Symbol) bool {
	return t.walk(seq) != nil
}

// HasWord reports whether seq is exactly a word.
func (t *Trie) HasWord(seq []Symbol) bool {
	n := t.walk(seq)
	return n != nil && n.word
}

// Len returns the number of distinct words inserted.
func (t *Trie) Len() int { return t.size }
