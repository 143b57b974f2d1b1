// Package history provides undo/redo for the document engine.
//
// Every structural edit records an Action describing how to reverse it:
//
//   - a Delete action keeps the removed fragment and the position it came
//     from; replaying it inserts the fragment back
//   - an Insert action keeps the inserted length and the position just
//     after the insertion; replaying it deletes that range again
//   - a Generic action carries its own inverse function
//
// # Direction Flipping
//
// Replaying an action performs an ordinary edit, and that edit pushes its
// own inverse. The Log routes those pushes by what it is doing:
//
//	normal edit     -> undo stack, redo stack cleared
//	during Undo     -> redo stack
//	during Redo     -> undo stack, redo stack kept
//
// Undoing an undo therefore becomes a redo, and undo/redo can cycle
// indefinitely without loss.
//
// Actions are single-shot: a replayed Delete hands its fragment to the
// document and cannot be replayed again.
//
// # Groups
//
// Several actions can be recorded as one undo unit:
//
//	log.BeginGroup("Reformat")
//	// ... multiple edits ...
//	log.EndGroup()
//
// Replaying a group replays its actions newest first, and the inverses
// pushed meanwhile form a group again.
//
// # Checkpoints
//
// CreateCheckpoint remembers the undo depth so a caller can unwind every
// edit made since with UndoToCheckpoint.
package history
