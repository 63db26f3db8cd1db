package repositories

import "errors"

var (
	// ErrNotFound is returned when no row matches the lookup
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("duplicate record")

	// ErrReferenceNotFound is returned when a foreign key points to a missing row
	ErrReferenceNotFound = errors.New("referenced record not found")
)
