package dom

import "errors"

// Errors returned by document operations.
var (
	// ErrNoSelection indicates an operation needed a selection inside the
	// region and there was none.
	ErrNoSelection = errors.New("no selection")

	// ErrInvalidMarkup indicates markup could not be parsed.
	ErrInvalidMarkup = errors.New("invalid markup")
)
