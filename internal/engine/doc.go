// Package engine provides the document editing core for folio.
//
// The engine package is the facade over the content tree and its edit
// machinery. An Engine owns one document: the tree, the cursor and mark,
// the undo log, and references to the collaborators it notifies while
// editing (layout, spell checking, the shared clipboard).
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - tree: arena of text runs, containers and embedded nodes
//   - cursor: positions, document order and grapheme stepping
//   - bounds: maps a selection onto paths for cutting and copying
//   - splice: seam splitting and the remove-empty-and-merge repair
//   - history: undo/redo log whose actions replay their own inverse
//   - clipboard: fragment store shared between documents
//
// # Edit Verbs
//
// Every verb returns whether the document changed. A verb whose
// precondition does not hold (no selection, detached node, empty
// clipboard) does nothing and logs the reason at debug level; errors are
// never returned to callers.
//
//	e := engine.New(engine.WithContent("Hello World"))
//	e.SelectRange(5, 6)
//	e.Cut()         // "HelloWorld", clipboard holds " "
//	e.Undo()        // "Hello World"
//	e.Redo()        // "HelloWorld"
//	e.JumpToOffset(0)
//	e.Paste()       // " HelloWorld"
//
// Each mutation is bracketed by Layout.Freeze and Layout.Thaw so the
// temporary seams of a splice are never drawn, and is followed by a
// spell check of the affected range.
//
// # Undo/Redo
//
// Delete-shaped edits record the removed fragment; insert-shaped edits
// record the inserted length. Replaying either performs the opposite
// edit through the engine, which records the opposite action, so undo
// and redo can cycle indefinitely. After an undo the content is restored
// exactly but text runs may be split at different points.
//
// # Thread Safety
//
// An Engine is not safe for concurrent use and edits are not re-entrant;
// callers serialize access. The Clipboard is the only value meant to be
// shared between engines and guards itself.
package engine
