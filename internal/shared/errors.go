package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness conflict.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput indicates the caller supplied a malformed value.
	ErrInvalidInput = errors.New("invalid input")
)
