// Package cursor provides the position model of the document editor.
//
// The cursor package handles:
//
//   - Positions: a (leaf node, offset) pair with a total document order
//   - Intervals: a mark/cursor pair normalised so that From <= To
//   - Movement: one grapheme cluster left or right across leaf boundaries
//
// Position Model:
//
// A Position always addresses a leaf of the content tree: a text run
// (offset counts runes) or an embedded node (offset 0 or 1). The point
// "end of leaf A" and "start of the next leaf B" are the same document
// location with two spellings; Forward and Backward pick the spelling
// that belongs to the adjacent content unit.
//
// Interval Model:
//
// Intervals use the mark/cursor pair of the editor:
//   - From: where the selection was started (the mark)
//   - To: the moving end (the cursor)
//
// Ordered returns the pair in document order regardless of direction.
//
// Basic usage:
//
//	pos := cursor.At(leaf, 3)
//	next, ok := cursor.Right(t, pos)   // one grapheme to the right
//	iv := cursor.NewInterval(mark, pos)
//	from, to := iv.Ordered(t)
//
// Thread Safety:
//
// Position and Interval are immutable value types. The movement
// functions read the tree and must not run concurrently with edits.
package cursor
