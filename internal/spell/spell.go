// Package spell keeps misspelling markers for a document up to date as
// the engine edits it.
//
// The engine calls CheckRange after every structural change with the
// affected range in absolute units. Markers after the range move with
// the edit; words touching the range are checked again.
package spell

import (
	_ "embed"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/sajari/fuzzy"
	"go.uber.org/zap"

	"github.com/dshills/folio/internal/engine/tree"
)

//go:embed words.txt
var dictionaryData string

// DefaultMinLength is the shortest word that is checked.
const DefaultMinLength = 3

// Marker flags one misspelled word by its absolute range.
type Marker struct {
	From int
	To   int
	Word string
}

// Checker is a fuzzy-model spell checker holding the markers of one
// document.
type Checker struct {
	mu sync.Mutex

	model  *fuzzy.Model
	minLen int
	logger *zap.Logger

	markers  []Marker
	lastSize int
}

// Option configures a Checker.
type Option func(*Checker)

// WithWords trains additional dictionary words.
func WithWords(words ...string) Option {
	return func(c *Checker) {
		for _, w := range words {
			if w = strings.TrimSpace(w); w != "" {
				c.model.TrainWord(strings.ToLower(w))
			}
		}
	}
}

// WithMinLength sets the shortest word that is checked.
func WithMinLength(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.minLen = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a checker trained on the embedded word list.
func New(opts ...Option) *Checker {
	model := fuzzy.NewModel()
	model.SetDepth(2)
	for _, word := range strings.Split(dictionaryData, "\n") {
		if word = strings.TrimSpace(word); word != "" {
			model.TrainWord(word)
		}
	}

	c := &Checker{
		model:  model,
		minLen: DefaultMinLength,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckWord returns true if the word is spelled correctly.
func (c *Checker) CheckWord(word string) bool {
	if word == "" {
		return true
	}
	lower := strings.ToLower(word)
	return c.model.SpellCheck(lower) == lower
}

// Suggest returns corrections for word, best first.
func (c *Checker) Suggest(word string) []string {
	return c.model.Suggestions(strings.ToLower(word), false)
}

// Check rescans the whole document.
func (c *Checker) Check(doc *tree.Tree) {
	c.CheckRange(doc, 0, doc.Size())
}

// CheckRange updates the markers after an edit. [from, to) is the
// affected range in the edited document: the inserted units, or an empty
// range where units were removed.
func (c *Checker) CheckRange(doc *tree.Tree, from, to int) {
	text := []rune(doc.PlainText())

	c.mu.Lock()
	defer c.mu.Unlock()

	size := len(text)
	delta := size - c.lastSize
	c.lastSize = size

	if from > to {
		from, to = to, from
	}
	from, to = clamp(from, 0, size), clamp(to, 0, size)

	var kept []Marker
	if from > 0 || to < size {
		oldEnd := to - delta
		if oldEnd < from {
			oldEnd = from
		}
		for _, m := range c.markers {
			switch {
			case m.To <= from:
				kept = append(kept, m)
			case m.From >= oldEnd:
				m.From += delta
				m.To += delta
				kept = append(kept, m)
			}
		}
	}

	lo, hi := from, to
	for lo > 0 && isWordRune(text[lo-1]) {
		lo--
	}
	for hi < size && isWordRune(text[hi]) {
		hi++
	}
	out := kept[:0]
	for _, m := range kept {
		if m.From < hi && m.To > lo {
			continue
		}
		out = append(out, m)
	}

	found := 0
	for _, w := range extractWords(text[lo:hi]) {
		if c.misspelled(w.word) {
			out = append(out, Marker{From: lo + w.start, To: lo + w.end, Word: w.word})
			found++
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	c.markers = out

	c.logger.Debug("spell check",
		zap.Int("from", lo),
		zap.Int("to", hi),
		zap.Int("found", found),
		zap.Int("markers", len(out)),
	)
}

// Markers returns a copy of the current markers in document order.
func (c *Checker) Markers() []Marker {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Marker, len(c.markers))
	copy(out, c.markers)
	return out
}

// Reset forgets all markers.
func (c *Checker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markers = nil
	c.lastSize = 0
}

func (c *Checker) misspelled(word string) bool {
	rs := []rune(word)
	if len(rs) < c.minLen {
		return false
	}
	// All-caps words are usually acronyms.
	allUpper := true
	for _, r := range rs {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			allUpper = false
			break
		}
	}
	if allUpper {
		return false
	}
	return !c.CheckWord(word)
}

type wordPosition struct {
	word       string
	start, end int
}

// extractWords splits text into runs of letters, allowing apostrophes
// inside a word.
func extractWords(text []rune) []wordPosition {
	var words []wordPosition
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || (r == '\'' && start >= 0) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, wordPosition{word: string(text[start:i]), start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, wordPosition{word: string(text[start:]), start: start, end: len(text)})
	}
	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || r == '\''
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
