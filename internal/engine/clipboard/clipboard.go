// Package clipboard holds cut and copied content between documents.
//
// The clipboard is the only state shared across engines, so it never
// aliases a live tree: Set and Get both deep-copy, and it is safe for
// concurrent use.
package clipboard

import (
	"sync"

	"github.com/dshills/folio/internal/engine/tree"
)

// Clipboard stores one fragment.
type Clipboard struct {
	mu   sync.RWMutex
	frag *tree.Fragment
}

// New creates an empty clipboard.
func New() *Clipboard {
	return &Clipboard{}
}

// Set replaces the content with a copy of f. A nil or empty fragment
// clears the clipboard.
func (c *Clipboard) Set(f *tree.Fragment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f.Empty() {
		c.frag = nil
		return
	}
	c.frag = f.Clone()
}

// SetText replaces the content with a single plain run.
func (c *Clipboard) SetText(text string) {
	c.Set(tree.TextFragment(text, tree.Style{}))
}

// Get returns a copy of the content, or nil when empty.
func (c *Clipboard) Get() *tree.Fragment {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.frag == nil {
		return nil
	}
	return c.frag.Clone()
}

// Len returns the number of units held.
func (c *Clipboard) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frag.Len()
}

// Empty reports whether the clipboard holds nothing.
func (c *Clipboard) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frag.Empty()
}

// Text returns the flattened text of the content.
func (c *Clipboard) Text() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frag.Text()
}

// Update replaces the content with fn applied to a copy of it. fn is
// not called when the clipboard is empty.
func (c *Clipboard) Update(fn func(f *tree.Fragment) *tree.Fragment) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frag.Empty() {
		return false
	}
	out := fn(c.frag.Clone())
	if out.Empty() {
		c.frag = nil
		return true
	}
	c.frag = out.Clone()
	return true
}

// Clear empties the clipboard.
func (c *Clipboard) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frag = nil
}
