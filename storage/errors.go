package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when no record exists for a key.
	ErrNotFound = errors.New("record not found")
)
