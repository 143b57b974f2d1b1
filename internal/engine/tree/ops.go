package tree

import "fmt"

// Cut is the result of OpCut.
type Cut struct {
	// Fragment holds the detached content.
	Fragment *Fragment

	// Length is the number of units removed.
	Length int

	// Left and Right are the seam chains left behind in the source,
	// ordered leaf first. Their top entries are adjacent children of
	// the ancestor. Leaves on the chains may be empty; repairing them is
	// the caller's job.
	Left, Right []NodeID
}

// OpCopy deep-copies the content between the paths from and to, both
// rooted at anc, into a new fragment. The source is not modified.
func (t *Tree) OpCopy(anc NodeID, from, to Path) (*Fragment, int, error) {
	if err := t.checkPath(anc, from); err != nil {
		return nil, 0, fmt.Errorf("op copy from: %w", err)
	}
	if err := t.checkPath(anc, to); err != nil {
		return nil, 0, fmt.Errorf("op copy to: %w", err)
	}
	f := NewFragment()
	lo, hi := from[0].Offset, to[0].Offset
	for i := lo; i <= hi; i++ {
		var fp, tp Path
		if i == lo {
			fp = from[1:]
		}
		if i == hi {
			tp = to[1:]
		}
		c := t.copyRange(f.tree, t.Child(anc, i), fp, tp)
		if !c.IsNil() {
			_ = f.tree.AppendChild(f.tree.root, c)
		}
	}
	f.prune()
	return f, f.Len(), nil
}

// copyRange copies the part of id bounded by the optional sub-paths fp
// (left bound) and tp (right bound). A nil bound means unbounded.
func (t *Tree) copyRange(dst *Tree, id NodeID, fp, tp Path) NodeID {
	n := t.get(id)
	if n == nil {
		return Nil
	}
	switch n.kind {
	case KindText:
		lo, hi := 0, len(n.text)
		if fp != nil {
			lo = fp[0].Offset
		}
		if tp != nil {
			hi = tp[0].Offset
		}
		if lo >= hi {
			return Nil
		}
		return dst.NewText(string(n.text[lo:hi]), n.style)
	case KindEmbedded:
		if fp != nil && fp[0].Offset > 0 {
			return Nil
		}
		if tp != nil && tp[0].Offset < 1 {
			return Nil
		}
		return dst.NewEmbedded(n.payload)
	}

	out := dst.NewContainer(n.tag, n.style)
	lo, hi := 0, len(n.children)-1
	if fp != nil {
		lo = fp[0].Offset
	}
	if tp != nil {
		hi = tp[0].Offset
	}
	for i := lo; i <= hi; i++ {
		var cfp, ctp Path
		if fp != nil && i == lo {
			cfp = fp[1:]
		}
		if tp != nil && i == hi {
			ctp = tp[1:]
		}
		if c := t.copyRange(dst, n.children[i], cfp, ctp); !c.IsNil() {
			_ = dst.AppendChild(out, c)
		}
	}
	return out
}

// OpCut detaches the content between the paths from and to, both rooted
// at anc, and returns it as a fragment. The source is closed up around
// the gap but not merge-repaired.
func (t *Tree) OpCut(anc NodeID, from, to Path) (Cut, error) {
	if err := t.checkPath(anc, from); err != nil {
		return Cut{}, fmt.Errorf("op cut from: %w", err)
	}
	if err := t.checkPath(anc, to); err != nil {
		return Cut{}, fmt.Errorf("op cut to: %w", err)
	}

	// Split the right end first so the left path stays valid.
	_, right, err := t.splitChain(to)
	if err != nil {
		return Cut{}, fmt.Errorf("op cut: %w", err)
	}
	left, _, err := t.splitChain(from)
	if err != nil {
		return Cut{}, fmt.Errorf("op cut: %w", err)
	}

	li := t.IndexOf(left[len(left)-1])
	ri := t.IndexOf(right[len(right)-1])
	f := NewFragment()
	for _, c := range t.Children(anc)[li+1 : ri] {
		cc := copyNode(f.tree, t, c)
		_ = f.tree.AppendChild(f.tree.root, cc)
		_ = t.Remove(c)
	}
	f.prune()
	return Cut{Fragment: f, Length: f.Len(), Left: left, Right: right}, nil
}

// splitChain splits the leaf at the end of p and every container on p
// below its first step. It returns the left and right seam chains, leaf
// first.
func (t *Tree) splitChain(p Path) (left, right []NodeID, err error) {
	leaf := p.Leaf()
	l, r, err := t.SplitLeaf(leaf.Node, leaf.Offset)
	if err != nil {
		return nil, nil, err
	}
	left, right = []NodeID{l}, []NodeID{r}
	for i := len(p) - 2; i >= 1; i-- {
		container := p[i].Node
		nr, err := t.SplitContainer(container, t.IndexOf(r))
		if err != nil {
			return nil, nil, err
		}
		l, r = container, nr
		left = append(left, l)
		right = append(right, r)
	}
	return left, right, nil
}
