package timer

import "errors"

var (
	// ErrNotFound is returned when no timer exists for the owner.
	ErrNotFound = errors.New("timer: not found")
	// ErrAlreadyExists is returned when creating a timer for an owner that has one.
	ErrAlreadyExists = errors.New("timer: already exists")
	// ErrInvalidTimeout is returned for a non-positive timeout window.
	ErrInvalidTimeout = errors.New("timer: timeout_days must be positive")
)
