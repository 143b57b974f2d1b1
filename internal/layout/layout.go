// Package layout defines the contract between the document engine and
// whatever lays out and paints the document.
//
// The engine brackets every multi-step splice with Freeze and Thaw so the
// temporarily invalid tree between a split and its repair is never laid
// out. Redraw requests made while frozen are coalesced into one on the
// outermost Thaw.
package layout

import "sync"

// Layout is the visual recalculation collaborator.
type Layout interface {
	// Freeze suspends recalculation and screen updates. Calls nest.
	Freeze()

	// Thaw resumes after the matching Freeze.
	Thaw()

	// ScheduleRedraw requests a recalculation.
	ScheduleRedraw()

	// HideCursor and ShowCursor bracket every cursor reposition.
	HideCursor()
	ShowCursor()
}

// Nop is a Layout that does nothing.
type Nop struct{}

// Freeze does nothing.
func (Nop) Freeze() {}

// Thaw does nothing.
func (Nop) Thaw() {}

// ScheduleRedraw does nothing.
func (Nop) ScheduleRedraw() {}

// HideCursor does nothing.
func (Nop) HideCursor() {}

// ShowCursor does nothing.
func (Nop) ShowCursor() {}

// EventType identifies a call made on a Recorder.
type EventType uint8

const (
	// EventFreeze records an outermost Freeze.
	EventFreeze EventType = iota

	// EventThaw records an outermost Thaw.
	EventThaw

	// EventRedraw records a performed recalculation.
	EventRedraw

	// EventHideCursor records a cursor hide.
	EventHideCursor

	// EventShowCursor records a cursor show.
	EventShowCursor
)

// String returns the string representation of the event type.
func (et EventType) String() string {
	switch et {
	case EventFreeze:
		return "freeze"
	case EventThaw:
		return "thaw"
	case EventRedraw:
		return "redraw"
	case EventHideCursor:
		return "hide"
	case EventShowCursor:
		return "show"
	default:
		return "unknown"
	}
}

// Recorder is an in-memory Layout that coalesces redraws and keeps a log
// of what it was asked to do. It is used headless and in tests.
type Recorder struct {
	mu sync.Mutex

	depth   int
	pending bool
	hidden  int

	events  []EventType
	redraws int
}

// NewRecorder creates a thawed recorder with a visible cursor.
func NewRecorder() *Recorder {
	return &Recorder{events: make([]EventType, 0, 16)}
}

// Freeze suspends redraws.
func (r *Recorder) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.depth++
	if r.depth == 1 {
		r.events = append(r.events, EventFreeze)
	}
}

// Thaw resumes redraws; the outermost Thaw performs one redraw if any was
// requested while frozen. Unbalanced calls are ignored.
func (r *Recorder) Thaw() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.depth == 0 {
		return
	}
	r.depth--
	if r.depth > 0 {
		return
	}
	r.events = append(r.events, EventThaw)
	if r.pending {
		r.pending = false
		r.redrawLocked()
	}
}

// ScheduleRedraw redraws now, or on the outermost Thaw when frozen.
func (r *Recorder) ScheduleRedraw() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.depth > 0 {
		r.pending = true
		return
	}
	r.redrawLocked()
}

func (r *Recorder) redrawLocked() {
	r.redraws++
	r.events = append(r.events, EventRedraw)
}

// HideCursor hides the cursor. Calls nest.
func (r *Recorder) HideCursor() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hidden++
	r.events = append(r.events, EventHideCursor)
}

// ShowCursor undoes one HideCursor.
func (r *Recorder) ShowCursor() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hidden > 0 {
		r.hidden--
	}
	r.events = append(r.events, EventShowCursor)
}

// Frozen reports whether a Freeze is outstanding.
func (r *Recorder) Frozen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depth > 0
}

// CursorVisible reports whether every HideCursor was matched.
func (r *Recorder) CursorVisible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hidden == 0
}

// Redraws returns the number of recalculations performed.
func (r *Recorder) Redraws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.redraws
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears the event log and counters. Outstanding freezes are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = r.events[:0]
	r.redraws = 0
}
