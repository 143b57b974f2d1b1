package tree

import "fmt"

// Fragment is a detached subtree held in its own arena. Its top-level
// nodes are the children of a private root container. Fragments never
// share nodes with a live document: moving content in or out of a tree
// always deep-copies.
type Fragment struct {
	tree *Tree
}

// NewFragment creates an empty fragment.
func NewFragment() *Fragment {
	return &Fragment{tree: NewBlank()}
}

// TextFragment creates a fragment holding one text run.
func TextFragment(text string, s Style) *Fragment {
	f := NewFragment()
	if text != "" {
		f.tree.AppendText(f.tree.root, text, s)
	}
	return f
}

// EmbeddedFragment creates a fragment holding one embedded node.
func EmbeddedFragment(p Payload) *Fragment {
	f := NewFragment()
	f.tree.AppendEmbedded(f.tree.root, p)
	return f
}

// Tree exposes the fragment's arena for building and inspection.
func (f *Fragment) Tree() *Tree {
	return f.tree
}

// Root returns the private root container.
func (f *Fragment) Root() NodeID {
	return f.tree.root
}

// Nodes returns the top-level nodes.
func (f *Fragment) Nodes() []NodeID {
	return f.tree.Children(f.tree.root)
}

// Empty reports whether the fragment has no top-level nodes.
func (f *Fragment) Empty() bool {
	return f == nil || f.tree.Len(f.tree.root) == 0
}

// Len returns the number of document units in the fragment.
func (f *Fragment) Len() int {
	if f == nil {
		return 0
	}
	return f.tree.Size()
}

// Clone returns an independent deep copy.
func (f *Fragment) Clone() *Fragment {
	out := NewFragment()
	if f == nil {
		return out
	}
	for _, id := range f.Nodes() {
		c := copyNode(out.tree, f.tree, id)
		_ = out.tree.AppendChild(out.tree.root, c)
	}
	return out
}

// Text returns the flattened text of the fragment.
func (f *Fragment) Text() string {
	if f == nil {
		return ""
	}
	return f.tree.PlainText()
}

// String returns the structural dump of the fragment.
func (f *Fragment) String() string {
	if f == nil {
		return ""
	}
	return f.tree.Dump()
}

// prune drops empty text runs and childless containers.
func (f *Fragment) prune() {
	f.tree.pruneBelow(f.tree.root)
}

func (t *Tree) pruneBelow(id NodeID) {
	for _, c := range t.Children(id) {
		if t.Kind(c) == KindContainer {
			t.pruneBelow(c)
		}
		if t.IsEmpty(c) {
			_ = t.Remove(c)
		}
	}
}

// copyNode deep-copies src's node id into dst and returns the new,
// detached handle.
func copyNode(dst, src *Tree, id NodeID) NodeID {
	n := src.get(id)
	if n == nil {
		return Nil
	}
	switch n.kind {
	case KindText:
		return dst.NewText(string(n.text), n.style)
	case KindEmbedded:
		return dst.NewEmbedded(n.payload)
	}
	out := dst.NewContainer(n.tag, n.style)
	for _, c := range n.children {
		cc := copyNode(dst, src, c)
		_ = dst.AppendChild(out, cc)
	}
	return out
}

// Graft deep-copies the top-level nodes of f into parent starting at
// index i and returns the new handles in order.
func (t *Tree) Graft(parent NodeID, i int, f *Fragment) ([]NodeID, error) {
	if t.Kind(parent) != KindContainer {
		return nil, fmt.Errorf("graft into %s: %w", parent, ErrNotContainer)
	}
	if i < 0 || i > t.Len(parent) {
		return nil, fmt.Errorf("graft at %d: %w", i, ErrOffsetOutOfRange)
	}
	var out []NodeID
	for _, id := range f.Nodes() {
		c := copyNode(t, f.tree, id)
		if err := t.InsertChild(parent, i, c); err != nil {
			return out, err
		}
		out = append(out, c)
		i++
	}
	return out, nil
}
