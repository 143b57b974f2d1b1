package tree

// FirstLeaf returns the leftmost leaf at or below id, or Nil when id is a
// container without leaves.
func (t *Tree) FirstLeaf(id NodeID) NodeID {
	n := t.get(id)
	if n == nil {
		return Nil
	}
	if n.kind != KindContainer {
		return id
	}
	for _, c := range n.children {
		if leaf := t.FirstLeaf(c); !leaf.IsNil() {
			return leaf
		}
	}
	return Nil
}

// LastLeaf returns the rightmost leaf at or below id, or Nil.
func (t *Tree) LastLeaf(id NodeID) NodeID {
	n := t.get(id)
	if n == nil {
		return Nil
	}
	if n.kind != KindContainer {
		return id
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if leaf := t.LastLeaf(n.children[i]); !leaf.IsNil() {
			return leaf
		}
	}
	return Nil
}

// NextLeaf returns the leaf following id in document order, or Nil.
func (t *Tree) NextLeaf(id NodeID) NodeID {
	for cur := id; !cur.IsNil() && cur != t.root; cur = t.Parent(cur) {
		for sib := t.NextSibling(cur); !sib.IsNil(); sib = t.NextSibling(sib) {
			if leaf := t.FirstLeaf(sib); !leaf.IsNil() {
				return leaf
			}
		}
	}
	return Nil
}

// PrevLeaf returns the leaf preceding id in document order, or Nil.
func (t *Tree) PrevLeaf(id NodeID) NodeID {
	for cur := id; !cur.IsNil() && cur != t.root; cur = t.Parent(cur) {
		for sib := t.PrevSibling(cur); !sib.IsNil(); sib = t.PrevSibling(sib) {
			if leaf := t.LastLeaf(sib); !leaf.IsNil() {
				return leaf
			}
		}
	}
	return Nil
}

// Leaves returns every leaf below id in document order.
func (t *Tree) Leaves(id NodeID) []NodeID {
	var out []NodeID
	t.walkLeaves(id, func(leaf NodeID) bool {
		out = append(out, leaf)
		return true
	})
	return out
}

// walkLeaves visits the leaves below id until fn returns false.
// It reports whether the walk ran to completion.
func (t *Tree) walkLeaves(id NodeID, fn func(NodeID) bool) bool {
	n := t.get(id)
	if n == nil {
		return true
	}
	if n.kind != KindContainer {
		return fn(id)
	}
	for _, c := range n.children {
		if !t.walkLeaves(c, fn) {
			return false
		}
	}
	return true
}

// LeafCount returns the number of leaves below id.
func (t *Tree) LeafCount(id NodeID) int {
	count := 0
	t.walkLeaves(id, func(NodeID) bool {
		count++
		return true
	})
	return count
}
