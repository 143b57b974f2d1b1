package tree

import "errors"

// Errors returned by tree operations.
var (
	// ErrInvalidNode indicates a nil or freed node handle.
	ErrInvalidNode = errors.New("invalid node")

	// ErrDetached indicates a node that is not reachable from the root.
	ErrDetached = errors.New("node is not attached to the tree")

	// ErrOffsetOutOfRange indicates an offset outside [0, length].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrInvalidPath indicates a path that does not describe a chain
	// from an ancestor down to a leaf.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotLeaf indicates a leaf operation applied to a container.
	ErrNotLeaf = errors.New("node is not a leaf")

	// ErrNotContainer indicates a container operation applied to a leaf.
	ErrNotContainer = errors.New("node is not a container")

	// ErrRootOperation indicates an operation that would split or remove the root.
	ErrRootOperation = errors.New("operation not permitted on root")
)
