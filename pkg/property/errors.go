package property

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against these to classify an *Error.
var (
	ErrNotPresent = errors.New("property not present")
	ErrCast       = errors.New("property has unexpected type")
)

// Error reports a failed extraction of one named field.
type Error struct {
	// Field is the wire name of the offending field.
	Field string

	// Err is ErrNotPresent or ErrCast.
	Err error
}

// Error implements error. Only the field name is included.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Err
}

// NotPresent returns an error for a field missing from the map.
func NotPresent(field string) error {
	return &Error{Field: field, Err: ErrNotPresent}
}

// Cast returns an error for a field whose value has the wrong type.
func Cast(field string) error {
	return &Error{Field: field, Err: ErrCast}
}

// IsNotPresent reports whether err is a NotPresent error.
func IsNotPresent(err error) bool {
	return errors.Is(err, ErrNotPresent)
}

// IsCast reports whether err is a Cast error.
func IsCast(err error) bool {
	return errors.Is(err, ErrCast)
}

// FieldOf returns the field name carried by err, or "" if err is not an
// *Error.
func FieldOf(err error) string {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Field
	}
	return ""
}
