package history

import "time"

// BeginGroup starts an action group.
// Actions pushed while grouping are combined into a single undo unit.
func (l *Log) BeginGroup(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.grouping {
		// Already grouping, ignore nested calls
		return
	}
	l.grouping = true
	l.groupName = name
	l.groupActs = nil
}

// EndGroup finishes an action group.
// All actions since BeginGroup become one undo entry.
func (l *Log) EndGroup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.grouping {
		return
	}
	l.grouping = false
	acts := l.groupActs
	l.groupActs = nil
	if len(acts) == 0 {
		return
	}
	l.pushUndoLocked(&entry{label: l.groupName, actions: acts, timestamp: time.Now()})
	l.redoStack = nil
}

// CancelGroup drops the pending group without adding it to history.
// Note: edits already made still affect the document!
func (l *Log) CancelGroup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.grouping = false
	l.groupActs = nil
}

// IsGrouping returns true if currently in an action group.
func (l *Log) IsGrouping() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.grouping
}

// GroupScope provides a convenient way to group actions using defer.
// Usage:
//
//	func reformat(l *Log) {
//	    defer l.GroupScope("Reformat").End()
//	    // ... multiple edits ...
//	}
type GroupScope struct {
	log    *Log
	active bool
}

// GroupScope starts a new group scope.
// Call End() or use with defer to properly close the group.
func (l *Log) GroupScope(name string) *GroupScope {
	l.BeginGroup(name)
	return &GroupScope{log: l, active: true}
}

// End ends the group scope.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.log.EndGroup()
		g.active = false
	}
}

// Cancel cancels the group scope without recording it.
func (g *GroupScope) Cancel() {
	if g.active {
		g.log.CancelGroup()
		g.active = false
	}
}

// Transaction runs fn within a grouped undo context.
// If fn returns an error, the group is cancelled.
func (l *Log) Transaction(name string, fn func() error) error {
	l.BeginGroup(name)
	if err := fn(); err != nil {
		l.CancelGroup()
		return err
	}
	l.EndGroup()
	return nil
}

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (l *Log) CreateCheckpoint() Checkpoint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Checkpoint{undoDepth: len(l.undoStack)}
}

// UndoToCheckpoint undoes all entries recorded since the checkpoint.
func (l *Log) UndoToCheckpoint(cp Checkpoint, ed Editor) error {
	for l.UndoCount() > cp.undoDepth {
		if err := l.Undo(ed); err != nil {
			return err
		}
	}
	return nil
}

// RedoToCheckpoint redoes entries until the undo depth reaches the
// checkpoint again. It only works while the redo stack holds them.
func (l *Log) RedoToCheckpoint(cp Checkpoint, ed Editor) error {
	for l.UndoCount() < cp.undoDepth && l.CanRedo() {
		if err := l.Redo(ed); err != nil {
			return err
		}
	}
	return nil
}
