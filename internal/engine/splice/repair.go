package splice

import (
	"github.com/dshills/folio/internal/engine/cursor"
	"github.com/dshills/folio/internal/engine/tree"
)

// Report summarises a repair pass.
type Report struct {
	// Removed counts the emptied nodes that were destroyed.
	Removed int

	// Merges lists every merge attempt in order. A refusal ends the list.
	Merges []tree.MergeResult

	// Left and Right count the chain nodes still attached after the
	// removal pass, from the top of each chain down.
	Left, Right int
}

// Merged returns the number of successful merges.
func (r Report) Merged() int {
	n := 0
	for _, m := range r.Merges {
		if m.Outcome == tree.Merged {
			n++
		}
	}
	return n
}

// RemoveEmptyAndMerge repairs the tree around a seam whose chains are
// left and right, leaf first, with adjacent top entries.
//
// Emptied nodes are removed bottom-up, left chain first. A node is kept
// when removing it would leave the container above the seam without any
// leaf, so the document always retains a place for the cursor. Positions
// on a removed left node move to the start of the right leaf; positions
// on a removed right node move to the start of the following leaf. Either
// falls back to the end of the preceding leaf.
//
// When merge is set the pair at the seam is joined, then the pair of
// children that became adjacent inside it, and so on down to the leaves.
// Positions in an absorbed run are renumbered by the left run's old
// length. The first refusal stops the descent.
//
// Finally a cursor at offset 0 with a preceding leaf sibling is moved to
// the end of that sibling.
func RemoveEmptyAndMerge(t *tree.Tree, merge bool, left, right []tree.NodeID, cur *cursor.Position, extra ...*cursor.Position) Report {
	var tracked []*cursor.Position
	for _, p := range append([]*cursor.Position{cur}, extra...) {
		if p != nil {
			tracked = append(tracked, p)
		}
	}

	var rep Report
	lt, rt := top(left), top(right)
	anc := t.Parent(lt)
	if anc.IsNil() {
		anc = t.Parent(rt)
	}
	if anc.IsNil() {
		return rep
	}
	seamIdx := t.IndexOf(lt)
	if seamIdx < 0 {
		seamIdx = t.IndexOf(rt) - 1
	}

	for _, id := range left {
		if removable(t, anc, id) {
			target := leftTarget(t, id, right)
			redirect(t, tracked, id, target)
			_ = t.Remove(id)
			rep.Removed++
		}
	}
	for _, id := range right {
		if removable(t, anc, id) {
			target := rightTarget(t, id)
			redirect(t, tracked, id, target)
			_ = t.Remove(id)
			rep.Removed++
		}
	}

	rep.Left, rep.Right = attached(t, left), attached(t, right)

	if merge {
		var l, r tree.NodeID
		switch {
		case t.Attached(lt) && t.Parent(lt) == anc:
			l, r = lt, t.NextSibling(lt)
		case t.Attached(rt) && t.Parent(rt) == anc:
			l, r = t.PrevSibling(rt), rt
		case seamIdx >= 0:
			l, r = t.Child(anc, seamIdx-1), t.Child(anc, seamIdx)
		}
		rep.Merges = Join(t, l, r, tracked...)
	}

	if cur != nil {
		*cur = canonical(t, *cur)
	}
	return rep
}

// Join merges r into l, then the last child of l with the first child of
// r that became adjacent, down to the leaves. It stops at the first
// attempt that does not merge and returns every attempt.
func Join(t *tree.Tree, l, r tree.NodeID, tracked ...*cursor.Position) []tree.MergeResult {
	return joinLevels(t, l, r, -1, tracked)
}

// joinLevels is Join stopping after levels merges. A negative levels
// means no limit.
func joinLevels(t *tree.Tree, l, r tree.NodeID, levels int, tracked []*cursor.Position) []tree.MergeResult {
	var out []tree.MergeResult
	for ; levels != 0 && !l.IsNil() && !r.IsNil(); levels-- {
		var lb, rb tree.NodeID
		if t.Kind(l) == tree.KindContainer && t.Kind(r) == tree.KindContainer {
			lb = t.Child(l, t.Len(l)-1)
			rb = t.Child(r, 0)
		}
		res := t.Merge(l, r)
		out = append(out, res)
		if res.Outcome != tree.Merged {
			break
		}
		if t.Kind(l) == tree.KindText {
			for _, p := range tracked {
				if p != nil && p.Node == r {
					*p = cursor.At(l, p.Offset+res.Shift)
				}
			}
		}
		l, r = lb, rb
	}
	return out
}

// attached counts the nodes of chain, leaf first, that are still in the
// tree.
func attached(t *tree.Tree, chain []tree.NodeID) int {
	n := 0
	for _, id := range chain {
		if t.Attached(id) {
			n++
		}
	}
	return n
}

func top(chain []tree.NodeID) tree.NodeID {
	if len(chain) == 0 {
		return tree.Nil
	}
	return chain[len(chain)-1]
}

// removable reports whether id is an attached empty node whose removal
// leaves anc with at least one leaf.
func removable(t *tree.Tree, anc, id tree.NodeID) bool {
	if !t.Attached(id) || id == t.Root() || id == anc {
		return false
	}
	if t.Kind(id) == tree.KindEmbedded || t.Units(id) != 0 {
		return false
	}
	return t.LeafCount(anc)-t.LeafCount(id) > 0
}

func leftTarget(t *tree.Tree, id tree.NodeID, right []tree.NodeID) cursor.Position {
	if len(right) > 0 && t.Attached(right[0]) && right[0] != id && !t.IsAncestor(id, right[0]) {
		return cursor.At(right[0], 0)
	}
	return rightTarget(t, id)
}

func rightTarget(t *tree.Tree, id tree.NodeID) cursor.Position {
	if next := t.NextLeaf(id); !next.IsNil() {
		return cursor.At(next, 0)
	}
	if prev := t.PrevLeaf(id); !prev.IsNil() {
		return cursor.At(prev, t.Len(prev))
	}
	return cursor.Position{}
}

// redirect moves every tracked position on id or below it to target.
func redirect(t *tree.Tree, tracked []*cursor.Position, id tree.NodeID, target cursor.Position) {
	for _, p := range tracked {
		if p.Node == id || t.IsAncestor(id, p.Node) {
			*p = target
		}
	}
}

func canonical(t *tree.Tree, p cursor.Position) cursor.Position {
	if p.Offset != 0 {
		return p
	}
	prev := t.PrevSibling(p.Node)
	if prev.IsNil() || !t.IsLeaf(prev) {
		return p
	}
	return cursor.At(prev, t.Len(prev))
}
