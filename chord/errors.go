package chord

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPitch    = errors.New("invalid pitch")
	ErrUnknownColor    = errors.New("unknown color")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidOctave   = errors.New("invalid octave")
	ErrInvalidVelocity = errors.New("invalid velocity")
	ErrTooManyFields   = errors.New("too many fields")
)

// ParseError reports which part of a chord token was rejected. It unwraps to
// one of the Err* kinds above.
type ParseError struct {
	Token string
	Value string
	Kind  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse chord %q: %v %q", e.Token, e.Kind, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// ProgressionError locates a failed token inside a progression string.
type ProgressionError struct {
	Index int
	Err   error
}

func (e *ProgressionError) Error() string {
	return fmt.Sprintf("chord %d: %v", e.Index, e.Err)
}

func (e *ProgressionError) Unwrap() error {
	return e.Err
}
