package cursor

import "github.com/dshills/folio/internal/engine/tree"

// Interval is a selection between the mark (From) and the cursor (To).
// The pair may run backwards; Ordered normalises it.
// Interval is an immutable value type.
type Interval struct {
	From Position // the mark
	To   Position // the cursor
}

// NewInterval creates an interval from mark to cur.
func NewInterval(mark, cur Position) Interval {
	return Interval{From: mark, To: cur}
}

// Collapsed creates an interval with no extent.
func Collapsed(p Position) Interval {
	return Interval{From: p, To: p}
}

// IsEmpty returns true if both ends use the same spelling.
func (iv Interval) IsEmpty() bool {
	return iv.From.Equals(iv.To)
}

// IsForward returns true if the cursor is at or after the mark.
func (iv Interval) IsForward(t *tree.Tree) bool {
	return Compare(t, iv.From, iv.To) <= 0
}

// Ordered returns the two ends in document order.
func (iv Interval) Ordered(t *tree.Tree) (from, to Position) {
	if iv.IsForward(t) {
		return iv.From, iv.To
	}
	return iv.To, iv.From
}

// Reverse returns the interval with mark and cursor swapped.
func (iv Interval) Reverse() Interval {
	return Interval{From: iv.To, To: iv.From}
}
