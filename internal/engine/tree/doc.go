// Package tree provides the content tree of a rich-text document.
//
// The tree is an arena of nodes addressed by generation-checked NodeID
// handles. A node is one of three closed kinds:
//
//   - KindText: a run of characters sharing one Style
//   - KindContainer: an ordered list of child nodes with a tag and style
//   - KindEmbedded: an opaque single-unit element (paragraph break, object)
//
// Children are owned by their container; the parent link is a plain handle
// lookup, so a freed node can never be reached through a stale reference.
//
// # Units and Offsets
//
// Text runs count one unit per rune, embedded nodes count one unit, and
// containers count nothing of their own. Every unit therefore has an
// absolute document offset, which is what undo records store:
//
//	abs, _ := t.Offset(leaf, 3)
//	leaf, off, _ := t.Locate(abs)
//
// # Structural Primitives
//
// The primitives used by the splice engine live here:
//
//   - SplitLeaf / SplitContainer: introduce seams without changing content
//   - Merge: absorb a right sibling into a compatible left sibling
//   - OpCopy / OpCut: clone or detach the content between two paths
//   - Graft: deep-copy a Fragment into the tree
//
// A Fragment is a detached subtree held in its own arena; it is the unit
// carried by the clipboard and by undo records.
package tree
