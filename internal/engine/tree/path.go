package tree

import "fmt"

// Step is one entry of a Path: a node and the offset taken inside it.
// For a container the offset is the index of the next step's node; for
// the final leaf it is the character offset.
type Step struct {
	Node   NodeID
	Offset int
}

// Path is a chain of steps from an ancestor container down to a leaf.
type Path []Step

// Leaf returns the final step.
func (p Path) Leaf() Step {
	if len(p) == 0 {
		return Step{}
	}
	return p[len(p)-1]
}

// Level returns the number of container steps above the leaf.
func (p Path) Level() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// PathTo builds the path from anc down to the position (leaf, off).
func (t *Tree) PathTo(anc, leaf NodeID, off int) (Path, error) {
	if !t.IsLeaf(leaf) {
		return nil, fmt.Errorf("path to %s: %w", leaf, ErrNotLeaf)
	}
	if off < 0 || off > t.Len(leaf) {
		return nil, fmt.Errorf("path to %s at %d: %w", leaf, off, ErrOffsetOutOfRange)
	}
	if !t.IsAncestor(anc, leaf) {
		return nil, fmt.Errorf("path from %s to %s: %w", anc, leaf, ErrInvalidPath)
	}
	path := Path{{Node: leaf, Offset: off}}
	for cur := leaf; cur != anc; {
		parent := t.Parent(cur)
		path = append(path, Step{Node: parent, Offset: t.IndexOf(cur)})
		cur = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// checkPath verifies that p is a well-formed chain starting at anc.
func (t *Tree) checkPath(anc NodeID, p Path) error {
	if len(p) < 2 || p[0].Node != anc {
		return ErrInvalidPath
	}
	for i := 0; i < len(p)-1; i++ {
		if t.Child(p[i].Node, p[i].Offset) != p[i+1].Node {
			return ErrInvalidPath
		}
	}
	leaf := p.Leaf()
	if !t.IsLeaf(leaf.Node) {
		return ErrNotLeaf
	}
	if leaf.Offset < 0 || leaf.Offset > t.Len(leaf.Node) {
		return ErrOffsetOutOfRange
	}
	return nil
}

// Anchor records a document position in two forms: the child-index chain
// from the root with a leaf offset, and the absolute unit offset. Resolve
// prefers the index chain and falls back to the absolute offset when the
// tree shape has changed.
type Anchor struct {
	Indices []int
	Offset  int
	Abs     int
}

// AnchorAt captures the position (leaf, off).
func (t *Tree) AnchorAt(leaf NodeID, off int) (Anchor, error) {
	if !t.Attached(leaf) {
		return Anchor{}, ErrDetached
	}
	path, err := t.PathTo(t.root, leaf, off)
	if err != nil {
		return Anchor{}, err
	}
	abs, err := t.Offset(leaf, off)
	if err != nil {
		return Anchor{}, err
	}
	indices := make([]int, 0, len(path)-1)
	for _, s := range path[:len(path)-1] {
		indices = append(indices, s.Offset)
	}
	return Anchor{Indices: indices, Offset: off, Abs: abs}, nil
}

// Resolve turns an anchor back into a leaf position.
func (t *Tree) Resolve(a Anchor) (NodeID, int, error) {
	cur := t.root
	for _, i := range a.Indices {
		cur = t.Child(cur, i)
		if cur.IsNil() {
			break
		}
	}
	if !cur.IsNil() && t.IsLeaf(cur) && a.Offset <= t.Len(cur) {
		if abs, err := t.Offset(cur, a.Offset); err == nil && abs == a.Abs {
			return cur, a.Offset, nil
		}
	}
	return t.Locate(a.Abs)
}
