package tree

import (
	"fmt"
	"strings"
)

// slot is one arena cell. gen is bumped every time the cell is freed.
type slot struct {
	gen  uint32
	live bool
	n    node
}

// Tree is an arena-backed content tree with a container root.
//
// Tree is not safe for concurrent use.
type Tree struct {
	slots []slot
	free  []uint32
	root  NodeID
}

// New creates a tree holding a single empty text run, the shape of an
// empty document.
func New() *Tree {
	t := NewBlank()
	t.AppendText(t.root, "", Style{})
	return t
}

// NewBlank creates a tree with a root container and no children.
func NewBlank() *Tree {
	t := &Tree{}
	t.root = t.alloc(node{kind: KindContainer, tag: "root"})
	return t
}

// NewFromText creates a tree from plain text. Newlines become paragraph
// breaks between text runs.
func NewFromText(text string) *Tree {
	t := NewBlank()
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			t.AppendEmbedded(t.root, Break())
		}
		if line != "" {
			t.AppendText(t.root, line, Style{})
		}
	}
	if t.FirstLeaf(t.root).IsNil() {
		t.AppendText(t.root, "", Style{})
	}
	return t
}

// alloc stores n in a free slot and returns its handle.
func (t *Tree) alloc(n node) NodeID {
	if k := len(t.free); k > 0 {
		idx := t.free[k-1]
		t.free = t.free[:k-1]
		s := &t.slots[idx]
		s.live = true
		s.n = n
		return NodeID{index: idx, gen: s.gen}
	}
	t.slots = append(t.slots, slot{gen: 1, live: true, n: n})
	return NodeID{index: uint32(len(t.slots) - 1), gen: 1}
}

// release frees id and its whole subtree.
func (t *Tree) release(id NodeID) {
	n := t.get(id)
	if n == nil {
		return
	}
	for _, c := range n.children {
		t.release(c)
	}
	s := &t.slots[id.index]
	s.live = false
	s.n = node{}
	s.gen++
	t.free = append(t.free, id.index)
}

// get returns the node behind id, or nil when the handle is stale.
func (t *Tree) get(id NodeID) *node {
	if id.IsNil() || int(id.index) >= len(t.slots) {
		return nil
	}
	s := &t.slots[id.index]
	if !s.live || s.gen != id.gen {
		return nil
	}
	return &s.n
}

// Root returns the root container.
func (t *Tree) Root() NodeID {
	return t.root
}

// Valid reports whether id refers to a live node.
func (t *Tree) Valid(id NodeID) bool {
	return t.get(id) != nil
}

// Attached reports whether id is live and reachable from the root.
func (t *Tree) Attached(id NodeID) bool {
	for cur := id; ; {
		n := t.get(cur)
		if n == nil {
			return false
		}
		if cur == t.root {
			return true
		}
		cur = n.parent
	}
}

// Kind returns the node kind, or 0 for an invalid handle.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.get(id); n != nil {
		return n.kind
	}
	return 0
}

// IsLeaf reports whether id is a text run or embedded node.
func (t *Tree) IsLeaf(id NodeID) bool {
	k := t.Kind(id)
	return k == KindText || k == KindEmbedded
}

// Len returns the length of a node in its own unit: runes for text runs,
// children for containers, 1 for embedded nodes.
func (t *Tree) Len(id NodeID) int {
	if n := t.get(id); n != nil {
		return n.length()
	}
	return 0
}

// IsEmpty reports whether id is a zero-length text run or a childless
// container. Embedded nodes are never empty.
func (t *Tree) IsEmpty(id NodeID) bool {
	n := t.get(id)
	if n == nil {
		return false
	}
	return n.kind != KindEmbedded && n.length() == 0
}

// Text returns the characters of a text run.
func (t *Tree) Text(id NodeID) string {
	if n := t.get(id); n != nil && n.kind == KindText {
		return string(n.text)
	}
	return ""
}

// Style returns the style of a text run or container.
func (t *Tree) Style(id NodeID) Style {
	if n := t.get(id); n != nil {
		return n.style
	}
	return Style{}
}

// SetStyle replaces the style of a text run or container in place.
func (t *Tree) SetStyle(id NodeID, s Style) error {
	n := t.get(id)
	if n == nil {
		return ErrInvalidNode
	}
	if n.kind == KindEmbedded {
		return fmt.Errorf("set style on %s: %w", n.kind, ErrNotLeaf)
	}
	n.style = s
	return nil
}

// Tag returns the tag of a container.
func (t *Tree) Tag(id NodeID) string {
	if n := t.get(id); n != nil {
		return n.tag
	}
	return ""
}

// Payload returns the payload of an embedded node.
func (t *Tree) Payload(id NodeID) Payload {
	if n := t.get(id); n != nil {
		return n.payload
	}
	return Payload{}
}

// IsBreak reports whether id is a paragraph break.
func (t *Tree) IsBreak(id NodeID) bool {
	n := t.get(id)
	return n != nil && n.kind == KindEmbedded && n.payload.Type == EmbedBreak
}

// Parent returns the parent container, or Nil for the root and detached nodes.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.get(id); n != nil {
		return n.parent
	}
	return Nil
}

// Children returns a copy of the child list of a container.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.get(id)
	if n == nil || len(n.children) == 0 {
		return nil
	}
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the i-th child of a container, or Nil.
func (t *Tree) Child(id NodeID, i int) NodeID {
	n := t.get(id)
	if n == nil || i < 0 || i >= len(n.children) {
		return Nil
	}
	return n.children[i]
}

// IndexOf returns the position of id in its parent's child list, or -1.
func (t *Tree) IndexOf(id NodeID) int {
	p := t.get(t.Parent(id))
	if p == nil {
		return -1
	}
	for i, c := range p.children {
		if c == id {
			return i
		}
	}
	return -1
}

// PrevSibling returns the sibling before id, or Nil.
func (t *Tree) PrevSibling(id NodeID) NodeID {
	i := t.IndexOf(id)
	if i <= 0 {
		return Nil
	}
	return t.Child(t.Parent(id), i-1)
}

// NextSibling returns the sibling after id, or Nil.
func (t *Tree) NextSibling(id NodeID) NodeID {
	i := t.IndexOf(id)
	if i < 0 {
		return Nil
	}
	return t.Child(t.Parent(id), i+1)
}

// Depth returns the number of ancestors of id; children of the root have
// depth 1.
func (t *Tree) Depth(id NodeID) int {
	d := 0
	for cur := t.Parent(id); !cur.IsNil(); cur = t.Parent(cur) {
		d++
	}
	return d
}

// Ancestors returns the chain from id's parent up to the root.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for cur := t.Parent(id); !cur.IsNil(); cur = t.Parent(cur) {
		out = append(out, cur)
	}
	return out
}

// IsAncestor reports whether anc is a strict ancestor of id.
func (t *Tree) IsAncestor(anc, id NodeID) bool {
	for cur := t.Parent(id); !cur.IsNil(); cur = t.Parent(cur) {
		if cur == anc {
			return true
		}
	}
	return false
}

// CommonAncestor returns the lowest container holding both a and b.
// For a == b it returns the parent.
func (t *Tree) CommonAncestor(a, b NodeID) NodeID {
	seen := make(map[NodeID]bool)
	for cur := t.Parent(a); !cur.IsNil(); cur = t.Parent(cur) {
		seen[cur] = true
	}
	for cur := t.Parent(b); !cur.IsNil(); cur = t.Parent(cur) {
		if seen[cur] {
			return cur
		}
	}
	return Nil
}

// NewText creates a detached text run.
func (t *Tree) NewText(text string, s Style) NodeID {
	return t.alloc(node{kind: KindText, text: []rune(text), style: s})
}

// NewContainer creates a detached, childless container.
func (t *Tree) NewContainer(tag string, s Style) NodeID {
	return t.alloc(node{kind: KindContainer, tag: tag, style: s})
}

// NewEmbedded creates a detached embedded node.
func (t *Tree) NewEmbedded(p Payload) NodeID {
	return t.alloc(node{kind: KindEmbedded, payload: p})
}

// InsertChild attaches the detached node child at index i of parent.
func (t *Tree) InsertChild(parent NodeID, i int, child NodeID) error {
	p := t.get(parent)
	if p == nil {
		return fmt.Errorf("insert into %s: %w", parent, ErrInvalidNode)
	}
	if p.kind != KindContainer {
		return fmt.Errorf("insert into %s: %w", parent, ErrNotContainer)
	}
	c := t.get(child)
	if c == nil {
		return fmt.Errorf("insert %s: %w", child, ErrInvalidNode)
	}
	if !c.parent.IsNil() || child == t.root {
		return fmt.Errorf("insert %s: node already attached", child)
	}
	if i < 0 || i > len(p.children) {
		return fmt.Errorf("insert at %d: %w", i, ErrOffsetOutOfRange)
	}
	p.children = append(p.children, Nil)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = child
	c.parent = parent
	return nil
}

// AppendChild attaches the detached node child as the last child of parent.
func (t *Tree) AppendChild(parent, child NodeID) error {
	return t.InsertChild(parent, t.Len(parent), child)
}

// AppendText creates a text run as the last child of parent.
// It returns Nil when parent is not a live container.
func (t *Tree) AppendText(parent NodeID, text string, s Style) NodeID {
	id := t.NewText(text, s)
	if err := t.AppendChild(parent, id); err != nil {
		t.release(id)
		return Nil
	}
	return id
}

// AppendContainer creates a container as the last child of parent.
func (t *Tree) AppendContainer(parent NodeID, tag string, s Style) NodeID {
	id := t.NewContainer(tag, s)
	if err := t.AppendChild(parent, id); err != nil {
		t.release(id)
		return Nil
	}
	return id
}

// AppendEmbedded creates an embedded node as the last child of parent.
func (t *Tree) AppendEmbedded(parent NodeID, p Payload) NodeID {
	id := t.NewEmbedded(p)
	if err := t.AppendChild(parent, id); err != nil {
		t.release(id)
		return Nil
	}
	return id
}

// detach unlinks id from its parent without freeing it.
func (t *Tree) detach(id NodeID) {
	n := t.get(id)
	if n == nil {
		return
	}
	p := t.get(n.parent)
	if p != nil {
		for i, c := range p.children {
			if c == id {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	n.parent = Nil
}

// Remove detaches id from the tree and frees its subtree.
// Handles to freed nodes become invalid.
func (t *Tree) Remove(id NodeID) error {
	if t.get(id) == nil {
		return ErrInvalidNode
	}
	if id == t.root {
		return ErrRootOperation
	}
	t.detach(id)
	t.release(id)
	return nil
}

// Replace puts the detached node with in place of id and frees id.
func (t *Tree) Replace(id, with NodeID) error {
	parent := t.Parent(id)
	if parent.IsNil() {
		return fmt.Errorf("replace %s: %w", id, ErrDetached)
	}
	i := t.IndexOf(id)
	if err := t.InsertChild(parent, i, with); err != nil {
		return err
	}
	return t.Remove(id)
}
