// Package splice implements the two primitives every structural edit is
// built from: splitting the tree at a position to open a seam, and
// repairing the tree around a seam afterwards by removing emptied nodes
// and merging compatible neighbours.
package splice

import (
	"errors"
	"fmt"

	"github.com/dshills/folio/internal/engine/cursor"
	"github.com/dshills/folio/internal/engine/tree"
)

// ErrInvalidPosition indicates a split position that does not address an
// attached leaf.
var ErrInvalidPosition = errors.New("invalid split position")

// Seam holds the two sibling chains produced by a split, leaf first. The
// top entries are adjacent children of the same container.
type Seam struct {
	Left, Right []tree.NodeID
}

// LeftTop returns the outermost node of the left chain.
func (s Seam) LeftTop() tree.NodeID {
	if len(s.Left) == 0 {
		return tree.Nil
	}
	return s.Left[len(s.Left)-1]
}

// RightTop returns the outermost node of the right chain.
func (s Seam) RightTop() tree.NodeID {
	if len(s.Right) == 0 {
		return tree.Nil
	}
	return s.Right[len(s.Right)-1]
}

// SplitAndAddEmptyTexts splits the leaf at pos and then each ancestor
// container until level containers have been cut, counting the leaf as
// level 1. Level is clamped to the leaf's depth so the root is never
// split. Document content is unchanged; leaves on the inside of the seam
// may be empty.
func SplitAndAddEmptyTexts(t *tree.Tree, pos cursor.Position, level int) (Seam, error) {
	if !pos.Valid(t) {
		return Seam{}, fmt.Errorf("split at %s: %w", pos, ErrInvalidPosition)
	}
	if d := t.Depth(pos.Node); level > d {
		level = d
	}
	if level < 1 {
		level = 1
	}

	l, r, err := t.SplitLeaf(pos.Node, pos.Offset)
	if err != nil {
		return Seam{}, fmt.Errorf("split at %s: %w", pos, err)
	}
	seam := Seam{Left: []tree.NodeID{l}, Right: []tree.NodeID{r}}
	for i := 1; i < level; i++ {
		c := t.Parent(l)
		nr, err := t.SplitContainer(c, t.IndexOf(r))
		if err != nil {
			return seam, fmt.Errorf("split at %s level %d: %w", pos, i+1, err)
		}
		l, r = c, nr
		seam.Left = append(seam.Left, l)
		seam.Right = append(seam.Right, r)
	}
	return seam, nil
}

// HeadChain returns the chain from the first leaf of top up to top, leaf
// first.
func HeadChain(t *tree.Tree, top tree.NodeID) []tree.NodeID {
	return chain(t, top, t.FirstLeaf(top))
}

// TailChain returns the chain from the last leaf of top up to top, leaf
// first.
func TailChain(t *tree.Tree, top tree.NodeID) []tree.NodeID {
	return chain(t, top, t.LastLeaf(top))
}

func chain(t *tree.Tree, top, leaf tree.NodeID) []tree.NodeID {
	if leaf.IsNil() {
		return []tree.NodeID{top}
	}
	out := []tree.NodeID{leaf}
	for cur := leaf; cur != top; {
		cur = t.Parent(cur)
		if cur.IsNil() {
			break
		}
		out = append(out, cur)
	}
	return out
}
