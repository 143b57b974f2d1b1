package tree

import "fmt"

// SplitLeaf splits the leaf id at off into two adjacent siblings and
// returns them. A text run keeps its handle on the left side; the right
// side is a new run with the same style. Either side may be empty.
//
// An embedded node cannot be cut, so an empty text run is added on the
// split side instead: at offset 0 the new run is the left side, at offset
// 1 it is the right side. Document content is unchanged in every case.
func (t *Tree) SplitLeaf(id NodeID, off int) (left, right NodeID, err error) {
	n := t.get(id)
	if n == nil {
		return Nil, Nil, fmt.Errorf("split leaf: %w", ErrInvalidNode)
	}
	if n.kind == KindContainer {
		return Nil, Nil, fmt.Errorf("split leaf %s: %w", id, ErrNotLeaf)
	}
	if off < 0 || off > n.length() {
		return Nil, Nil, fmt.Errorf("split leaf %s at %d: %w", id, off, ErrOffsetOutOfRange)
	}
	parent := n.parent
	if parent.IsNil() {
		return Nil, Nil, fmt.Errorf("split leaf %s: %w", id, ErrDetached)
	}
	idx := t.IndexOf(id)

	if n.kind == KindEmbedded {
		empty := t.NewText("", Style{})
		if off == 0 {
			if err := t.InsertChild(parent, idx, empty); err != nil {
				return Nil, Nil, err
			}
			return empty, id, nil
		}
		if err := t.InsertChild(parent, idx+1, empty); err != nil {
			return Nil, Nil, err
		}
		return id, empty, nil
	}

	tail := make([]rune, len(n.text)-off)
	copy(tail, n.text[off:])
	style := n.style
	n.text = n.text[:off:off]

	// n may be stale after alloc grows the arena.
	right = t.alloc(node{kind: KindText, text: tail, style: style})
	if err := t.InsertChild(parent, idx+1, right); err != nil {
		return Nil, Nil, err
	}
	return id, right, nil
}

// SplitContainer moves the children of id from index at onward into a new
// container with the same tag and style, inserted right after id.
// Either container may end up childless.
func (t *Tree) SplitContainer(id NodeID, at int) (NodeID, error) {
	n := t.get(id)
	if n == nil {
		return Nil, fmt.Errorf("split container: %w", ErrInvalidNode)
	}
	if n.kind != KindContainer {
		return Nil, fmt.Errorf("split container %s: %w", id, ErrNotContainer)
	}
	if id == t.root {
		return Nil, fmt.Errorf("split container: %w", ErrRootOperation)
	}
	if at < 0 || at > len(n.children) {
		return Nil, fmt.Errorf("split container %s at %d: %w", id, at, ErrOffsetOutOfRange)
	}
	parent := n.parent
	if parent.IsNil() {
		return Nil, fmt.Errorf("split container %s: %w", id, ErrDetached)
	}

	moved := make([]NodeID, len(n.children)-at)
	copy(moved, n.children[at:])
	n.children = n.children[:at:at]
	tag, style := n.tag, n.style

	right := t.alloc(node{kind: KindContainer, tag: tag, style: style, children: moved})
	for _, c := range moved {
		t.get(c).parent = right
	}
	if err := t.InsertChild(parent, t.IndexOf(id)+1, right); err != nil {
		return Nil, err
	}
	return right, nil
}
