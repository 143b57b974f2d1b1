package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/folio/internal/engine/splice"
	"github.com/dshills/folio/internal/engine/tree"
)

// Editor is the document surface an action replays against.
type Editor interface {
	// InsertFragmentAt puts f back where it was cut from and records the
	// matching Insert action. A nil site, or one that no longer fits the
	// document, inserts at the anchored position instead.
	InsertFragmentAt(at tree.Anchor, site *splice.Site, f *tree.Fragment) error

	// DeleteRangeAt deletes the length units ending at the anchored
	// position and records the matching Delete action.
	DeleteRangeAt(at tree.Anchor, length int) error
}

// Kind identifies the shape of an action.
type Kind uint8

// Action kinds.
const (
	KindDelete Kind = iota + 1
	KindInsert
	KindGeneric
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDelete:
		return "delete"
	case KindInsert:
		return "insert"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Action is one undoable edit.
type Action struct {
	ID    uuid.UUID
	Kind  Kind
	Label string

	// At is the position the inverse applies to: where a deleted
	// fragment goes back, or the end of an inserted range.
	At tree.Anchor

	// Fragment is the removed content of a Delete action.
	Fragment *tree.Fragment

	// Site is the gap a Delete action left, when known.
	Site *splice.Site

	// Length is the number of units added by an Insert action.
	Length int

	// Inverse reverses a Generic action.
	Inverse func(ed Editor) error

	Timestamp time.Time

	consumed bool
}

// NewDelete records the removal of f, which used to start at at.
func NewDelete(at tree.Anchor, f *tree.Fragment) *Action {
	return &Action{
		ID:        uuid.New(),
		Kind:      KindDelete,
		Label:     "delete",
		At:        at,
		Fragment:  f,
		Timestamp: time.Now(),
	}
}

// NewInsert records the insertion of length units ending at at.
func NewInsert(at tree.Anchor, length int) *Action {
	return &Action{
		ID:        uuid.New(),
		Kind:      KindInsert,
		Label:     "insert",
		At:        at,
		Length:    length,
		Timestamp: time.Now(),
	}
}

// NewGeneric records an edit reversed by inverse.
func NewGeneric(label string, inverse func(ed Editor) error) *Action {
	return &Action{
		ID:        uuid.New(),
		Kind:      KindGeneric,
		Label:     label,
		Inverse:   inverse,
		Timestamp: time.Now(),
	}
}

// WithSite records the gap a deletion left and returns the action for
// chaining.
func (a *Action) WithSite(s splice.Site) *Action {
	a.Site = &s
	return a
}

// WithLabel sets the label and returns the action for chaining.
func (a *Action) WithLabel(label string) *Action {
	a.Label = label
	return a
}

// Consumed reports whether the action has been replayed.
func (a *Action) Consumed() bool {
	return a.consumed
}

// Replay applies the inverse of the action to ed. A successful replay
// consumes the action; a failed one leaves it intact.
func (a *Action) Replay(ed Editor) error {
	if a.consumed {
		return fmt.Errorf("replay %s: %w", a.ID, ErrActionConsumed)
	}
	var err error
	switch a.Kind {
	case KindDelete:
		err = ed.InsertFragmentAt(a.At, a.Site, a.Fragment)
	case KindInsert:
		err = ed.DeleteRangeAt(a.At, a.Length)
	case KindGeneric:
		if a.Inverse == nil {
			return fmt.Errorf("replay %s: %w", a.ID, ErrNoInverse)
		}
		err = a.Inverse(ed)
	default:
		return fmt.Errorf("replay %s: unknown kind %d", a.ID, a.Kind)
	}
	if err != nil {
		return fmt.Errorf("replay %s %s: %w", a.Kind, a.ID, err)
	}
	a.consumed = true
	a.Fragment = nil
	a.Site = nil
	return nil
}

// Description returns a human-readable description of the action.
func (a *Action) Description() string {
	switch a.Kind {
	case KindDelete:
		return fmt.Sprintf("%s %d units", a.Label, a.Fragment.Len())
	case KindInsert:
		return fmt.Sprintf("%s %d units", a.Label, a.Length)
	default:
		return a.Label
	}
}

// Delta returns the change in document length the edit made: positive
// for insertions, negative for deletions.
func (a *Action) Delta() int {
	switch a.Kind {
	case KindDelete:
		return -a.Fragment.Len()
	case KindInsert:
		return a.Length
	default:
		return 0
	}
}

// Info provides read-only info about an undo entry.
// Used for displaying undo/redo history to users.
type Info struct {
	ID          uuid.UUID
	Description string
	Timestamp   time.Time
	Delta       int
	Actions     int
}
