package vdir

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateExtension = errors.New("extension already registered")
	ErrInvalidExtension   = errors.New("invalid extension")
	ErrNilDriver          = errors.New("driver must not be nil")
	ErrNotFound           = errors.New("entry not found")
)

// ParseError is returned when a driver fails to read the entry list of a
// backing file.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse entries of %v: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
