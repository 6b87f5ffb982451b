package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique key.
	ErrDuplicate = errors.New("duplicate key")
)
