package layered

import "errors"

// Errors returned by Stack operations.
var (
	// ErrLayerNotFound indicates the named layer doesn't exist in the stack.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrLayerReadOnly indicates modification was attempted on a read-only layer.
	ErrLayerReadOnly = errors.New("layer is read-only")
)
