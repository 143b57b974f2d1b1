package history

import "errors"

// Common errors for history operations.
var (
	ErrNothingToUndo  = errors.New("nothing to undo")
	ErrNothingToRedo  = errors.New("nothing to redo")
	ErrActionConsumed = errors.New("action already replayed")
	ErrNoInverse      = errors.New("generic action has no inverse")
	ErrReplaying      = errors.New("history is replaying")
)
