package engine

import "errors"

// Errors recorded when an edit does not happen. Verbs log them and
// return false.
var (
	// ErrNoSelection indicates a verb that needs a selection was called
	// without one.
	ErrNoSelection = errors.New("no active selection")

	// ErrEmptySelection indicates the selection covers no content.
	ErrEmptySelection = errors.New("selection is empty")

	// ErrInvalidCursor indicates the cursor does not address an attached
	// leaf.
	ErrInvalidCursor = errors.New("cursor is not in the document")

	// ErrEmptyClipboard indicates a paste with nothing to paste.
	ErrEmptyClipboard = errors.New("clipboard is empty")

	// ErrEmptyFragment indicates an insertion of no content.
	ErrEmptyFragment = errors.New("fragment is empty")

	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)
