package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a conditional update finds the record changed since it was read
	ErrConflict = errors.New("conflict: record was modified by another writer")
)
