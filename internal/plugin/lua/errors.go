package lua

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call runs past its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoFunction is returned when a called global is missing or is not a
	// function.
	ErrNoFunction = errors.New("lua function not found")

	// ErrInvalidResult is returned when highlight returns something other
	// than a list of {start, stop, class} triples.
	ErrInvalidResult = errors.New("lua highlight returned an invalid result")
)
