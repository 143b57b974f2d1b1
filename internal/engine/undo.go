package engine

import (
	"github.com/dshills/folio/internal/engine/history"
)

// Undo reverses the most recent edit. The reversal is recorded for Redo.
func (e *Engine) Undo() bool {
	if e.readOnly {
		return e.reject("undo", ErrReadOnly)
	}
	e.layout.Freeze()
	defer e.layout.Thaw()
	if err := e.history.Undo(e); err != nil {
		return e.reject("undo", err)
	}
	return true
}

// Redo reapplies the most recently undone edit.
func (e *Engine) Redo() bool {
	if e.readOnly {
		return e.reject("redo", ErrReadOnly)
	}
	e.layout.Freeze()
	defer e.layout.Thaw()
	if err := e.history.Redo(e); err != nil {
		return e.reject("redo", err)
	}
	return true
}

// CanUndo returns true if there are operations to undo.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if there are operations to redo.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// BeginGroup starts grouping edits so they undo as one unit.
func (e *Engine) BeginGroup(name string) {
	e.history.BeginGroup(name)
}

// EndGroup ends the current group.
func (e *Engine) EndGroup() {
	e.history.EndGroup()
}

// Group runs fn with its edits grouped into one undo unit and returns
// fn's result.
func (e *Engine) Group(name string, fn func() bool) bool {
	defer e.history.GroupScope(name).End()
	return fn()
}

// Checkpoint marks the current undo position.
func (e *Engine) Checkpoint() history.Checkpoint {
	return e.history.CreateCheckpoint()
}

// UndoToCheckpoint undoes edits until the log is back at cp.
func (e *Engine) UndoToCheckpoint(cp history.Checkpoint) bool {
	if e.readOnly {
		return e.reject("undo", ErrReadOnly)
	}
	e.layout.Freeze()
	defer e.layout.Thaw()
	if err := e.history.UndoToCheckpoint(cp, e); err != nil {
		return e.reject("undo", err)
	}
	return true
}

// RedoToCheckpoint redoes edits until the log is back at cp.
func (e *Engine) RedoToCheckpoint(cp history.Checkpoint) bool {
	if e.readOnly {
		return e.reject("redo", ErrReadOnly)
	}
	e.layout.Freeze()
	defer e.layout.Thaw()
	if err := e.history.RedoToCheckpoint(cp, e); err != nil {
		return e.reject("redo", err)
	}
	return true
}
