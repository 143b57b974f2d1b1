package tree

import "fmt"

// Units returns the number of document units below id: runes of text
// runs plus one per embedded node.
func (t *Tree) Units(id NodeID) int {
	n := t.get(id)
	if n == nil {
		return 0
	}
	if n.kind != KindContainer {
		return n.length()
	}
	total := 0
	for _, c := range n.children {
		total += t.Units(c)
	}
	return total
}

// Size returns the number of units in the whole document.
func (t *Tree) Size() int {
	return t.Units(t.root)
}

// Offset converts the position (leaf, off) into an absolute unit offset.
func (t *Tree) Offset(leaf NodeID, off int) (int, error) {
	if !t.IsLeaf(leaf) {
		return 0, fmt.Errorf("offset of %s: %w", leaf, ErrNotLeaf)
	}
	if off < 0 || off > t.Len(leaf) {
		return 0, fmt.Errorf("offset of %s at %d: %w", leaf, off, ErrOffsetOutOfRange)
	}
	abs, found := 0, false
	t.walkLeaves(t.root, func(id NodeID) bool {
		if id == leaf {
			found = true
			return false
		}
		abs += t.Len(id)
		return true
	})
	if !found {
		return 0, fmt.Errorf("offset of %s: %w", leaf, ErrDetached)
	}
	return abs + off, nil
}

// Locate converts an absolute unit offset into a leaf position. At a
// boundary between two leaves the earlier leaf wins, so the result is
// "just after A" rather than "start of B".
func (t *Tree) Locate(abs int) (NodeID, int, error) {
	if abs < 0 {
		return Nil, 0, fmt.Errorf("locate %d: %w", abs, ErrOffsetOutOfRange)
	}
	acc := 0
	var hit NodeID
	var off int
	t.walkLeaves(t.root, func(id NodeID) bool {
		n := t.Len(id)
		if abs <= acc+n {
			hit, off = id, abs-acc
			return false
		}
		acc += n
		return true
	})
	if hit.IsNil() {
		return Nil, 0, fmt.Errorf("locate %d: %w", abs, ErrOffsetOutOfRange)
	}
	return hit, off, nil
}
