package highlight

import "errors"

var (
	// ErrUnknownLanguage is returned when no tokenizer matches a name.
	ErrUnknownLanguage = errors.New("highlight: unknown language")

	// ErrInvalidName is returned by ByName for a malformed selector.
	ErrInvalidName = errors.New("highlight: invalid highlighter name")
)
