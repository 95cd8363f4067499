package service

import (
	"github.com/pkg/errors"

	"pinboard/internal/repository"
)

var (
	// ErrNotFound reports an unknown component or saved circuit
	ErrNotFound = repository.ErrNotFound
	// ErrInvalid reports a request the circuit cannot accept
	ErrInvalid = errors.New("invalid request")
)

// IsNotFound reports whether err was caused by ErrNotFound
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

// IsInvalid reports whether err was caused by ErrInvalid
func IsInvalid(err error) bool {
	return errors.Cause(err) == ErrInvalid
}
