package tilemap

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad is returned when a map or tileset file is missing or cannot be decoded.
	ErrLoad = errors.New("tilemap: load failed")
	// ErrMissingElement is returned when a required element such as <map> is absent.
	ErrMissingElement = errors.New("tilemap: missing element")
	// ErrTypeMismatch is returned by typed property accessors.
	ErrTypeMismatch = errors.New("tilemap: property type mismatch")
	// ErrPropertyNotFound is returned by PropertyStore shortcuts for absent names.
	ErrPropertyNotFound = errors.New("tilemap: property not found")
)

// PropertyError describes a failed typed property access.
type PropertyError struct {
	Name string
	Want Kind
	Got  Kind
	// Err is the underlying parse error, if the kind matched but the value did not parse.
	Err error
}

func (e *PropertyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("property %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("property %q: want %s, got %s", e.Name, e.Want, e.Got)
}

func (e *PropertyError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrTypeMismatch
}
