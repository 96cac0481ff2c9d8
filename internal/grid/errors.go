package grid

import "errors"

var (
	// ErrViewNotFound is returned when an operation names an unregistered view.
	ErrViewNotFound = errors.New("view not found")
	// ErrOrphanedView means a registered view has no parent in the tree.
	// It indicates a bug in the grid, never a caller error.
	ErrOrphanedView = errors.New("invariant violated: orphaned view")
	// ErrDuplicateView is returned when a view id is already registered.
	ErrDuplicateView = errors.New("duplicate view id")
	// ErrInvalidState is returned by Deserialize for malformed layout state.
	ErrInvalidState = errors.New("invalid layout state")
	// ErrDisposed is returned by mutations on a disposed grid.
	ErrDisposed = errors.New("grid disposed")
)
