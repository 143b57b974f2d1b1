package history

import (
	"sync"
	"time"
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

type replayState uint8

const (
	replayNone replayState = iota
	replayUndo
	replayRedo
)

// entry is one undo unit: a single action or a group, oldest first.
type entry struct {
	label     string
	actions   []*Action
	timestamp time.Time
}

func (e *entry) info() Info {
	inf := Info{
		Description: e.label,
		Timestamp:   e.timestamp,
		Actions:     len(e.actions),
	}
	if len(e.actions) > 0 {
		inf.ID = e.actions[0].ID
		if inf.Description == "" {
			inf.Description = e.actions[0].Description()
		}
	}
	for _, a := range e.actions {
		inf.Delta += a.Delta()
	}
	return inf
}

// replay reverses the entry's actions newest first.
func (e *entry) replay(ed Editor) error {
	for i := len(e.actions) - 1; i >= 0; i-- {
		if err := e.actions[i].Replay(ed); err != nil {
			return err
		}
	}
	return nil
}

// unreplayed returns the actions a failed replay did not reach, oldest
// first.
func (e *entry) unreplayed() []*Action {
	var out []*Action
	for _, a := range e.actions {
		if !a.consumed {
			out = append(out, a)
		}
	}
	return out
}

// Log manages the undo and redo stacks of one document.
type Log struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	// Pushes made while an entry replays.
	replaying replayState
	pending   []*Action

	// Grouping state
	grouping  bool
	groupName string
	groupActs []*Action

	maxEntries int
}

// NewLog creates a log keeping at most maxEntries undo units.
func NewLog(maxEntries int) *Log {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Log{maxEntries: maxEntries}
}

// Push records an action. Outside of a replay it goes to the undo stack
// and clears the redo stack; during Undo it goes to the redo stack;
// during Redo it goes to the undo stack and the redo stack is kept.
func (l *Log) Push(a *Action) {
	if a == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.replaying != replayNone {
		l.pending = append(l.pending, a)
		return
	}
	if l.grouping {
		l.groupActs = append(l.groupActs, a)
		return
	}
	l.pushUndoLocked(&entry{label: a.Label, actions: []*Action{a}, timestamp: a.Timestamp})
	l.redoStack = nil
}

// pushUndoLocked appends to the undo stack without touching redo.
func (l *Log) pushUndoLocked(e *entry) {
	l.undoStack = append(l.undoStack, e)
	if len(l.undoStack) > l.maxEntries {
		excess := len(l.undoStack) - l.maxEntries
		l.undoStack = l.undoStack[excess:]
	}
}

// Undo replays the newest undo entry against ed. The inverses pushed
// meanwhile become one redo entry. The lock is released during the replay
// because the editor pushes back into the log.
func (l *Log) Undo(ed Editor) error {
	l.mu.Lock()
	if l.replaying != replayNone {
		l.mu.Unlock()
		return ErrReplaying
	}
	if len(l.undoStack) == 0 {
		l.mu.Unlock()
		return ErrNothingToUndo
	}
	e := l.undoStack[len(l.undoStack)-1]
	l.undoStack = l.undoStack[:len(l.undoStack)-1]
	l.replaying = replayUndo
	l.pending = nil
	l.mu.Unlock()

	err := e.replay(ed)

	l.mu.Lock()
	defer l.mu.Unlock()
	pushed := l.finishReplayLocked()
	if err != nil {
		// Whatever did replay is redoable; the rest stays undoable.
		if rest := e.unreplayed(); len(rest) > 0 {
			l.undoStack = append(l.undoStack, &entry{label: e.label, actions: rest, timestamp: e.timestamp})
		}
	}
	if len(pushed) > 0 {
		l.redoStack = append(l.redoStack, &entry{label: e.label, actions: pushed, timestamp: time.Now()})
	}
	return err
}

// Redo replays the newest redo entry against ed. The inverses pushed
// meanwhile become one undo entry.
func (l *Log) Redo(ed Editor) error {
	l.mu.Lock()
	if l.replaying != replayNone {
		l.mu.Unlock()
		return ErrReplaying
	}
	if len(l.redoStack) == 0 {
		l.mu.Unlock()
		return ErrNothingToRedo
	}
	e := l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]
	l.replaying = replayRedo
	l.pending = nil
	l.mu.Unlock()

	err := e.replay(ed)

	l.mu.Lock()
	defer l.mu.Unlock()
	pushed := l.finishReplayLocked()
	if err != nil {
		if rest := e.unreplayed(); len(rest) > 0 {
			l.redoStack = append(l.redoStack, &entry{label: e.label, actions: rest, timestamp: e.timestamp})
		}
	}
	if len(pushed) > 0 {
		l.pushUndoLocked(&entry{label: e.label, actions: pushed, timestamp: time.Now()})
	}
	return err
}

func (l *Log) finishReplayLocked() []*Action {
	pushed := l.pending
	l.pending = nil
	l.replaying = replayNone
	return pushed
}

// CanUndo returns true if undo is available.
func (l *Log) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (l *Log) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redoStack) > 0
}

// UndoCount returns the number of undo entries available.
func (l *Log) UndoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undoStack)
}

// RedoCount returns the number of redo entries available.
func (l *Log) RedoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.redoStack)
}

// Clear removes all undo/redo history.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.undoStack = nil
	l.redoStack = nil
	l.grouping = false
	l.groupActs = nil
}

// UndoInfo returns info about available undo entries, oldest first.
func (l *Log) UndoInfo() []Info {
	l.mu.Lock()
	defer l.mu.Unlock()
	return infos(l.undoStack)
}

// RedoInfo returns info about available redo entries, oldest first.
func (l *Log) RedoInfo() []Info {
	l.mu.Lock()
	defer l.mu.Unlock()
	return infos(l.redoStack)
}

func infos(stack []*entry) []Info {
	result := make([]Info, len(stack))
	for i, e := range stack {
		result[i] = e.info()
	}
	return result
}

// PeekUndo returns info about the next undo entry without removing it.
func (l *Log) PeekUndo() (Info, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.undoStack) == 0 {
		return Info{}, false
	}
	return l.undoStack[len(l.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo entry without removing it.
func (l *Log) PeekRedo() (Info, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.redoStack) == 0 {
		return Info{}, false
	}
	return l.redoStack[len(l.redoStack)-1].info(), true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (l *Log) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.maxEntries = max
	if len(l.undoStack) > max {
		excess := len(l.undoStack) - max
		l.undoStack = l.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (l *Log) MaxEntries() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxEntries
}
