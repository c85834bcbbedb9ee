package a11y

import "errors"

// Errors returned by accessible objects. They are wrapped with context, so
// compare with errors.Is.
var (
	// ErrOutOfRange is returned when a row or column index is outside the
	// current bounds of the grid.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrNotFound is returned when a row has no live accessible.
	ErrNotFound = errors.New("row accessible not found")

	// ErrStale is returned when a row or cell is used after shutdown.
	ErrStale = errors.New("accessible is defunct")

	// ErrIndexOutOfRange is returned for an unknown action index.
	ErrIndexOutOfRange = errors.New("action index out of range")

	// ErrNoEditor is returned when the host can not start an edit.
	ErrNoEditor = errors.New("data source does not support editing")
)
