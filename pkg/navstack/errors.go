package navstack

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrClosed is returned when work is submitted to a router or executor
	// that has already been closed.
	ErrClosed = errors.New("navstack: router closed")

	// ErrFrameOutOfRange indicates a routing action named a frame index that
	// the frame registry does not hold. The registry was mutated outside the
	// router or a routable returned nil from a push.
	ErrFrameOutOfRange = errors.New("navstack: frame index out of range")

	// ErrEmptySegment is returned when parsing a route containing an empty segment.
	ErrEmptySegment = errors.New("navstack: empty route segment")

	// ErrMalformedAction indicates a standard action payload is missing a
	// required field or holds a value of the wrong type.
	ErrMalformedAction = errors.New("navstack: malformed action")

	// ErrUnknownActionType indicates a standard action type has no registered decoder.
	ErrUnknownActionType = errors.New("navstack: unknown action type")
)

// DecodeError describes a standard action that could not be decoded into a
// navigation state. There is no safe default for a missing field, so decoding
// stops at the first bad one.
type DecodeError struct {
	Type  string // Action type being decoded
	Field string // Payload key that was missing or mistyped
	Err   error  // Underlying error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("navstack: decode %s: field %q: %v", e.Type, e.Field, e.Err)
	}
	return fmt.Sprintf("navstack: decode %s: field %q", e.Type, e.Field)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a decode error for the given action type and field.
// A nil err is replaced by ErrMalformedAction.
func NewDecodeError(actionType, field string, err error) *DecodeError {
	if err == nil {
		err = ErrMalformedAction
	}
	return &DecodeError{Type: actionType, Field: field, Err: err}
}

// IsDecodeError checks if an error is a decode error.
func IsDecodeError(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr)
}

// IsMalformed checks if an error indicates a malformed standard action.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedAction)
}
