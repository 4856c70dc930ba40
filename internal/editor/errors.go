package editor

import "errors"

// Errors returned by New.
var (
	// ErrNoDocument indicates the config has no document.
	ErrNoDocument = errors.New("editor: no document")

	// ErrNoRoot indicates the config has no root element.
	ErrNoRoot = errors.New("editor: root must be an element")

	// ErrNoScheduler indicates the config has no scheduler.
	ErrNoScheduler = errors.New("editor: no scheduler")
)

// ErrHighlighterPanic wraps a panic raised by a highlighter.
var ErrHighlighterPanic = errors.New("editor: highlighter panicked")
