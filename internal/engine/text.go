package engine

import (
	"strings"
	"unicode"

	"github.com/dshills/folio/internal/engine/tree"
)

// InsertText inserts text at the cursor. Each line is inserted as its own
// text run and each newline as a paragraph break, so every piece is a
// separate undo entry. A typed URL followed by a link trigger or a
// newline becomes a link when magic links are enabled.
func (e *Engine) InsertText(text string) bool {
	if e.readOnly {
		return e.reject("insert text", ErrReadOnly)
	}
	if text == "" {
		return e.reject("insert text", ErrEmptyFragment)
	}
	if !e.cur.Valid(e.doc) {
		return e.reject("insert text", ErrInvalidCursor)
	}

	changed := false
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		more := i < len(lines)-1
		if line != "" {
			if err := e.insertChunk(line, more); err != nil {
				e.reject("insert text", err)
				return changed
			}
			changed = true
		}
		if more {
			if err := e.insertObject(tree.EmbeddedFragment(tree.Break()), "insert break", nil); err != nil {
				e.reject("insert text", err)
				return changed
			}
			changed = true
		}
	}
	return changed
}

// InsertBreak inserts a paragraph break at the cursor.
func (e *Engine) InsertBreak() bool {
	return e.InsertText("\n")
}

// insertChunk inserts one line of text in the typing style.
func (e *Engine) insertChunk(chunk string, beforeBreak bool) error {
	if err := e.insertObject(tree.TextFragment(chunk, e.typingStyle()), "insert text", nil); err != nil {
		return err
	}
	if !e.magicLinks {
		return nil
	}
	runes := []rune(chunk)
	trigger := strings.ContainsRune(e.linkTriggers, runes[len(runes)-1])
	if trigger || beforeBreak {
		e.magicLink(trigger)
	}
	return nil
}

// typingStyle is the style new text takes at the cursor: the style of the
// text run it sits in, without any link.
func (e *Engine) typingStyle() tree.Style {
	id := e.cur.Node
	if e.doc.Kind(id) != tree.KindText {
		id = e.doc.PrevLeaf(id)
		if e.doc.Kind(id) != tree.KindText {
			return tree.Style{}
		}
	}
	return e.doc.Style(id).WithoutLink()
}

// magicLink turns the word before the cursor into a link if it starts
// with one of the link schemes. A trailing trigger character is not part
// of the word.
func (e *Engine) magicLink(trigger bool) {
	leaf := e.cur.Node
	if e.doc.Kind(leaf) != tree.KindText || e.doc.Style(leaf).IsLink() {
		return
	}
	runes := []rune(e.doc.Text(leaf))
	hi := e.cur.Offset
	if trigger {
		hi--
	}
	lo := hi
	for lo > 0 && !isWordStop(runes[lo-1]) {
		lo--
	}
	url := linkTarget(string(runes[lo:hi]), e.linkSchemes)
	if url == "" {
		return
	}
	from := e.abs(e.cur) - (e.cur.Offset - lo)
	n := e.transformRange("magic link", from, from+hi-lo, func(s tree.Style, u string) tree.Style {
		return s.WithLink(u, "")
	}, url)
	if n > 0 {
		e.logger.Debug("magic link")
	}
}

// linkTarget returns the URL word links to, or "" if word does not start
// with a scheme.
func linkTarget(word string, schemes []string) string {
	lower := strings.ToLower(word)
	for _, s := range schemes {
		s = strings.ToLower(s)
		if len(lower) <= len(s) || !strings.HasPrefix(lower, s) {
			continue
		}
		if s == "www." {
			return "http://" + word
		}
		return word
	}
	return ""
}

func isWordStop(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == '<'
}
