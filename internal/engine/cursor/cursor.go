package cursor

import (
	"fmt"

	"github.com/dshills/folio/internal/engine/tree"
)

// NodeID is an alias for tree.NodeID for convenience.
type NodeID = tree.NodeID

// Position is a (leaf, offset) location in the document.
// Position is an immutable value type.
type Position struct {
	Node   NodeID
	Offset int
}

// At creates a position.
func At(node NodeID, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	return Position{Node: node, Offset: offset}
}

// IsZero reports whether p has no node.
func (p Position) IsZero() bool {
	return p.Node.IsNil()
}

// Valid reports whether p addresses an attached leaf with an offset in
// [0, length].
func (p Position) Valid(t *tree.Tree) bool {
	if !t.IsLeaf(p.Node) || !t.Attached(p.Node) {
		return false
	}
	return p.Offset >= 0 && p.Offset <= t.Len(p.Node)
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("Position(%s, %d)", p.Node, p.Offset)
}

// Equals returns true if both positions use the same spelling.
func (p Position) Equals(other Position) bool {
	return p.Node == other.Node && p.Offset == other.Offset
}

// Compare returns -1 if a < b, 0 if a == b, 1 if a > b in document order.
// Positions are compared by their spelling: "end of A" sorts before
// "start of B" even though they denote the same location.
func Compare(t *tree.Tree, a, b Position) int {
	if a.Node == b.Node {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	}
	pa, pb := indexChain(t, a.Node), indexChain(t, b.Node)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		switch {
		case pa[i] < pb[i]:
			return -1
		case pa[i] > pb[i]:
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

// Before returns true if a is before b.
func Before(t *tree.Tree, a, b Position) bool {
	return Compare(t, a, b) < 0
}

// indexChain returns the child indices from the root down to id.
func indexChain(t *tree.Tree, id NodeID) []int {
	var chain []int
	for cur := id; !t.Parent(cur).IsNil(); cur = t.Parent(cur) {
		chain = append(chain, t.IndexOf(cur))
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
