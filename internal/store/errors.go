package store

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrEmptyFilter is returned when an update or delete has no condition.
	// Modifying every row must be asked for explicitly.
	ErrEmptyFilter = errors.New("refusing to modify every row without a filter")
)
