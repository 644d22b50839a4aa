package repository

import (
	"errors"
	"fmt"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
	// ErrStoreUnavailable marks a backing store that could not be read or reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Unavailable wraps a driver failure so callers can match ErrStoreUnavailable
// while the original cause (including context cancellation) stays inspectable.
func Unavailable(err error) error {
	if err == nil || errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
