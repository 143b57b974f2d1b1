package tree

// MergeOutcome tells whether a merge happened and, if not, why.
type MergeOutcome uint8

// Merge outcomes.
const (
	// MergeSkipped means no merge was attempted: a handle was invalid or
	// the nodes were not adjacent siblings.
	MergeSkipped MergeOutcome = iota

	// Merged means the right node was absorbed into the left node.
	Merged

	// MergeIncompatible means the nodes differ in kind, tag or style.
	// It is a policy refusal, not an error.
	MergeIncompatible
)

// String returns the outcome name.
func (o MergeOutcome) String() string {
	switch o {
	case Merged:
		return "merged"
	case MergeIncompatible:
		return "incompatible"
	default:
		return "skipped"
	}
}

// MergeResult describes the outcome of Merge.
type MergeResult struct {
	Outcome MergeOutcome

	// Shift is the length of the left node before the merge. A position
	// (right, off) becomes (left, off+Shift) after a text merge; for
	// containers it is the index of the first absorbed child.
	Shift int
}

// Compatible reports whether left and right could merge.
func (t *Tree) Compatible(left, right NodeID) bool {
	l, r := t.get(left), t.get(right)
	if l == nil || r == nil || l.kind != r.kind {
		return false
	}
	switch l.kind {
	case KindText:
		return l.style == r.style
	case KindContainer:
		return l.tag == r.tag && l.style == r.style
	default:
		return false
	}
}

// Merge absorbs right into left. The two nodes must be adjacent siblings,
// right directly after left. Text runs concatenate; containers adopt the
// right node's children. On success right is freed. Nothing is mutated
// unless the outcome is Merged.
func (t *Tree) Merge(left, right NodeID) MergeResult {
	if t.get(left) == nil || t.get(right) == nil || left == right {
		return MergeResult{Outcome: MergeSkipped}
	}
	if t.NextSibling(left) != right {
		return MergeResult{Outcome: MergeSkipped}
	}
	if !t.Compatible(left, right) {
		return MergeResult{Outcome: MergeIncompatible}
	}

	l, r := t.get(left), t.get(right)
	shift := l.length()
	switch l.kind {
	case KindText:
		l.text = append(l.text, r.text...)
	case KindContainer:
		for _, c := range r.children {
			t.get(c).parent = left
		}
		l.children = append(l.children, r.children...)
		r.children = nil
	}
	t.detach(right)
	t.release(right)
	return MergeResult{Outcome: Merged, Shift: shift}
}
