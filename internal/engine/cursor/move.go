package cursor

import "github.com/dshills/folio/internal/engine/tree"

// Left returns the position one grapheme before p, crossing into earlier
// leaves and skipping zero-length ones. It returns false at the start of
// the document.
func Left(t *tree.Tree, p Position) (Position, bool) {
	if !t.IsLeaf(p.Node) {
		return Position{}, false
	}
	if p.Offset > 0 {
		return Position{Node: p.Node, Offset: stepBack(t, p.Node, p.Offset)}, true
	}
	for leaf := t.PrevLeaf(p.Node); !leaf.IsNil(); leaf = t.PrevLeaf(leaf) {
		if n := t.Len(leaf); n > 0 {
			return Position{Node: leaf, Offset: stepBack(t, leaf, n)}, true
		}
	}
	return Position{}, false
}

// Right returns the position one grapheme after p, crossing into later
// leaves and skipping zero-length ones. It returns false at the end of
// the document.
func Right(t *tree.Tree, p Position) (Position, bool) {
	if !t.IsLeaf(p.Node) {
		return Position{}, false
	}
	if p.Offset < t.Len(p.Node) {
		return Position{Node: p.Node, Offset: stepForward(t, p.Node, p.Offset)}, true
	}
	for leaf := t.NextLeaf(p.Node); !leaf.IsNil(); leaf = t.NextLeaf(leaf) {
		if t.Len(leaf) > 0 {
			return Position{Node: leaf, Offset: stepForward(t, leaf, 0)}, true
		}
	}
	return Position{}, false
}

// Forward respells p so that it sits in the leaf holding the unit that
// follows it: "end of A" becomes "start of B". Positions already inside a
// leaf, and the document end, are returned unchanged.
func Forward(t *tree.Tree, p Position) Position {
	if p.Offset < t.Len(p.Node) {
		return p
	}
	for leaf := t.NextLeaf(p.Node); !leaf.IsNil(); leaf = t.NextLeaf(leaf) {
		if t.Len(leaf) > 0 {
			return Position{Node: leaf}
		}
	}
	return p
}

// Backward respells p so that it sits in the leaf holding the unit that
// precedes it: "start of B" becomes "end of A".
func Backward(t *tree.Tree, p Position) Position {
	if p.Offset > 0 {
		return p
	}
	for leaf := t.PrevLeaf(p.Node); !leaf.IsNil(); leaf = t.PrevLeaf(leaf) {
		if n := t.Len(leaf); n > 0 {
			return Position{Node: leaf, Offset: n}
		}
	}
	return p
}

// Start returns the first position of the document.
func Start(t *tree.Tree) Position {
	return Position{Node: t.FirstLeaf(t.Root())}
}

// End returns the last position of the document.
func End(t *tree.Tree) Position {
	leaf := t.LastLeaf(t.Root())
	return Position{Node: leaf, Offset: t.Len(leaf)}
}

func stepBack(t *tree.Tree, leaf NodeID, off int) int {
	if t.Kind(leaf) != tree.KindText {
		return 0
	}
	return prevBoundary([]rune(t.Text(leaf)), off)
}

func stepForward(t *tree.Tree, leaf NodeID, off int) int {
	if t.Kind(leaf) != tree.KindText {
		return 1
	}
	return nextBoundary([]rune(t.Text(leaf)), off)
}
