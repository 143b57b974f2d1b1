// Package bounds maps a selection interval onto the tree-relative bounds
// needed by the structural cut and copy primitives.
//
// For an interval, Prepare finds the first and last included content
// units, the lowest container holding both, the paths from that container
// down to each end, and optionally the positions just outside the
// selection. The result is independent of the selection direction.
package bounds

import (
	"errors"
	"fmt"

	"github.com/dshills/folio/internal/engine/cursor"
	"github.com/dshills/folio/internal/engine/tree"
)

// ErrInvalidInterval indicates an interval end that does not address an
// attached leaf.
var ErrInvalidInterval = errors.New("invalid interval")

// Bounds describes the tree-relative extent of a selection.
type Bounds struct {
	// Empty is set when the interval covers no content unit.
	Empty bool

	// Begin and End are the start of the first and the end of the last
	// included unit.
	Begin, End cursor.Position

	// Ancestor is the lowest container holding both ends.
	Ancestor tree.NodeID

	// Level is the number of steps from Begin's leaf up to Ancestor.
	Level int

	// From and To are the paths from Ancestor down to Begin and End.
	From, To tree.Path

	// BoundLeft and BoundRight are the positions one unit outside the
	// selection. They are only computed on request; HasLeft and HasRight
	// are false at the document edges.
	BoundLeft, BoundRight cursor.Position
	HasLeft, HasRight     bool
}

// Whole reports whether the selection reaches both document edges.
// Only meaningful when boundaries were requested.
func (b Bounds) Whole() bool {
	return !b.Empty && !b.HasLeft && !b.HasRight
}

// Prepare resolves iv into Bounds. Boundaries are computed only when
// withBoundaries is set; copying does not need them.
func Prepare(t *tree.Tree, iv cursor.Interval, withBoundaries bool) (Bounds, error) {
	if !iv.From.Valid(t) || !iv.To.Valid(t) {
		return Bounds{}, fmt.Errorf("prepare bounds: %w", ErrInvalidInterval)
	}
	a, b := iv.Ordered(t)
	begin := cursor.Forward(t, a)
	end := cursor.Backward(t, b)
	if iv.IsEmpty() || cursor.Compare(t, begin, end) >= 0 {
		return Bounds{Empty: true, Begin: a, End: a}, nil
	}

	anc := t.CommonAncestor(begin.Node, end.Node)
	from, err := ParentList(t, anc, begin)
	if err != nil {
		return Bounds{}, fmt.Errorf("prepare bounds: %w", err)
	}
	to, err := ParentList(t, anc, end)
	if err != nil {
		return Bounds{}, fmt.Errorf("prepare bounds: %w", err)
	}

	out := Bounds{
		Begin:    begin,
		End:      end,
		Ancestor: anc,
		Level:    ParentLevel(t, begin.Node, end.Node),
		From:     from,
		To:       to,
	}
	if withBoundaries {
		out.BoundLeft, out.HasLeft = cursor.Left(t, begin)
		out.BoundRight, out.HasRight = cursor.Right(t, end)
	}
	return out, nil
}

// ParentLevel returns the number of ancestor steps from a until its chain
// meets b's: 1 when a and b share their immediate parent, or are the same
// node.
func ParentLevel(t *tree.Tree, a, b tree.NodeID) int {
	anc := t.CommonAncestor(a, b)
	if anc.IsNil() {
		return 0
	}
	return t.Depth(a) - t.Depth(anc)
}

// ParentList returns the ancestor chain from anc down to p, each step
// paired with the offset taken inside it.
func ParentList(t *tree.Tree, anc tree.NodeID, p cursor.Position) (tree.Path, error) {
	return t.PathTo(anc, p.Node, p.Offset)
}
