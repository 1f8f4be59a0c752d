package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a uniqueness invariant would be violated.
	ErrDuplicate = errors.New("duplicate row")
	// ErrForeignKey is returned when a referenced parent row does not exist.
	ErrForeignKey = errors.New("referenced row does not exist")
	// ErrInvalidInput is returned when a caller-supplied value fails validation.
	ErrInvalidInput = errors.New("invalid input")
)
