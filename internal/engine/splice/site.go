package splice

import (
	"errors"
	"fmt"

	"github.com/dshills/folio/internal/engine/cursor"
	"github.com/dshills/folio/internal/engine/tree"
)

// ErrSiteMismatch indicates a site that does not describe the tree it is
// applied to.
var ErrSiteMismatch = errors.New("site does not match the tree")

// Site records where a cut took content out of the tree, in terms that
// outlive node handles: the container that held the content, the gap
// between its children, and how the repair closed the gap. Restore uses
// it to put the content back at its original nesting.
type Site struct {
	// Container lists the child indices from the root down to the
	// container the content was cut from.
	Container []int

	// Index is the number of the container's children left of the gap
	// once the repair merges are undone.
	Index int

	// Abs is the number of document units before the gap.
	Abs int

	// Left and Right are the levels of the seam chains the repair kept.
	// Restored content is joined back into that many levels on each side.
	Left, Right int

	// Shifts holds the Shift of every merge the repair made across the
	// gap, outermost first.
	Shifts []int
}

// Capture describes the gap left in anc by a cut whose first removed
// child sat at index first and whose seam was repaired as rep.
func Capture(t *tree.Tree, anc tree.NodeID, first int, rep Report) (Site, error) {
	if !t.Attached(anc) || t.Kind(anc) != tree.KindContainer {
		return Site{}, fmt.Errorf("capture site in %s: %w", anc, ErrSiteMismatch)
	}
	var path []int
	for cur := anc; cur != t.Root(); cur = t.Parent(cur) {
		path = append([]int{t.IndexOf(cur)}, path...)
	}
	s := Site{Container: path, Index: first, Left: rep.Left, Right: rep.Right}
	if rep.Left > 0 {
		s.Index++
	}
	for _, m := range rep.Merges {
		if m.Outcome != tree.Merged {
			break
		}
		s.Shifts = append(s.Shifts, m.Shift)
	}
	abs, err := s.gapOffset(t, anc)
	if err != nil {
		return Site{}, fmt.Errorf("capture site in %s: %w", anc, err)
	}
	s.Abs = abs
	return s, nil
}

// Restore puts f back into the gap s describes. The merges the repair
// made across the gap are split apart again, f is grafted in, and its
// edges are joined only into the seam levels the cut had split. cur ends
// up after the restored content. The tree is left untouched when s does
// not fit it.
func Restore(t *tree.Tree, s Site, f *tree.Fragment, cur *cursor.Position) error {
	if f.Empty() {
		return fmt.Errorf("restore: empty fragment: %w", ErrSiteMismatch)
	}
	c, err := s.container(t)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	merged, err := s.mergedChain(t, c)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if abs, _ := s.gapOffset(t, c); abs != s.Abs {
		return fmt.Errorf("restore: gap at %d, want %d: %w", abs, s.Abs, ErrSiteMismatch)
	}
	if (s.Left > 0 && s.Index == 0) || (s.Right > 0 && len(merged) == 0 && s.Index >= t.Len(c)) {
		return fmt.Errorf("restore: %w", ErrSiteMismatch)
	}

	if err := unmerge(t, merged, s.Shifts); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	var left, right []tree.NodeID
	if s.Left > 0 {
		left = keep(TailChain(t, t.Child(c, s.Index-1)), s.Left)
	}
	if s.Right > 0 {
		right = keep(HeadChain(t, t.Child(c, s.Index)), s.Right)
	}

	nodes, err := t.Graft(c, s.Index, f)
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	first, last := nodes[0], nodes[len(nodes)-1]
	end := t.LastLeaf(last)
	*cur = cursor.At(end, t.Len(end))
	tracked := []*cursor.Position{cur}

	if len(right) > 0 {
		joinLevels(t, last, top(right), len(right), tracked)
	}
	if len(left) > 0 {
		joinLevels(t, top(left), first, len(left), tracked)
	}
	for _, id := range append(left, right...) {
		if removable(t, c, id) {
			redirect(t, tracked, id, rightTarget(t, id))
			_ = t.Remove(id)
		}
	}
	*cur = canonical(t, *cur)
	return nil
}

// container resolves the container the site points into.
func (s Site) container(t *tree.Tree) (tree.NodeID, error) {
	c := t.Root()
	for _, i := range s.Container {
		c = t.Child(c, i)
	}
	if t.Kind(c) != tree.KindContainer || s.Index < 0 || s.Index > t.Len(c) {
		return tree.Nil, ErrSiteMismatch
	}
	return c, nil
}

// mergedChain returns the nodes the repair merged across the gap,
// outermost first. Each one but the last holds the next at index
// shift-1; the last is split at its own shift.
func (s Site) mergedChain(t *tree.Tree, c tree.NodeID) ([]tree.NodeID, error) {
	if len(s.Shifts) == 0 {
		return nil, nil
	}
	chain := []tree.NodeID{t.Child(c, s.Index-1)}
	for i, sh := range s.Shifts {
		m := chain[i]
		last := i == len(s.Shifts)-1
		switch t.Kind(m) {
		case tree.KindContainer:
			if sh > t.Len(m) || sh < 0 || (!last && sh < 1) {
				return nil, ErrSiteMismatch
			}
		case tree.KindText:
			if !last || sh < 0 || sh > t.Len(m) {
				return nil, ErrSiteMismatch
			}
		default:
			return nil, ErrSiteMismatch
		}
		if !last {
			chain = append(chain, t.Child(m, sh-1))
		}
	}
	return chain, nil
}

// gapOffset counts the units before the gap as if the repair merges were
// undone.
func (s Site) gapOffset(t *tree.Tree, c tree.NodeID) (int, error) {
	merged, err := s.mergedChain(t, c)
	if err != nil {
		return 0, err
	}
	abs := unitsBefore(t, c)
	n := s.Index
	if len(merged) > 0 {
		n--
	}
	for i := 0; i < n; i++ {
		abs += t.Units(t.Child(c, i))
	}
	for i, m := range merged {
		sh := s.Shifts[i]
		if t.Kind(m) == tree.KindText {
			abs += sh
			continue
		}
		if i < len(merged)-1 {
			sh--
		}
		for j := 0; j < sh; j++ {
			abs += t.Units(t.Child(m, j))
		}
	}
	return abs, nil
}

// unitsBefore counts the units that precede id in document order.
func unitsBefore(t *tree.Tree, id tree.NodeID) int {
	n := 0
	for cur := id; !t.Parent(cur).IsNil(); cur = t.Parent(cur) {
		parent := t.Parent(cur)
		for i := t.IndexOf(cur) - 1; i >= 0; i-- {
			n += t.Units(t.Child(parent, i))
		}
	}
	return n
}

// unmerge splits the merged chain back into its two halves, innermost
// first, leaving the right halves as the next siblings of the left ones.
func unmerge(t *tree.Tree, merged []tree.NodeID, shifts []int) error {
	if len(merged) == 0 {
		return nil
	}
	deepest, sh := merged[len(merged)-1], shifts[len(merged)-1]
	var r tree.NodeID
	var err error
	if t.Kind(deepest) == tree.KindText {
		_, r, err = t.SplitLeaf(deepest, sh)
	} else {
		r, err = t.SplitContainer(deepest, sh)
	}
	for i := len(merged) - 2; i >= 0 && err == nil; i-- {
		r, err = t.SplitContainer(merged[i], t.IndexOf(r))
	}
	return err
}

// keep returns the top n entries of a leaf-first chain.
func keep(chain []tree.NodeID, n int) []tree.NodeID {
	if n > len(chain) {
		n = len(chain)
	}
	if n <= 0 {
		return nil
	}
	return chain[len(chain)-n:]
}
