// Package editor turns an editable region into a small code editor.
//
// An Editor listens on the region for keyboard and clipboard events and
// rewrites the region's text for the intents a code editor cares about:
// new lines that keep their indentation, tab and shift+tab, auto-closing
// brackets and quotes, plain-text paste and cut, and undo/redo over
// snapshots of the region.
//
// The region may be restructured at any time by a syntax highlighter. The
// editor never keeps node references across such a rewrite; it saves the
// caret as character offsets (package caret), lets the highlighter run and
// restores the caret afterwards.
//
// # Event Loop
//
// An Editor is not safe for concurrent use. Events, public methods and
// deferred work must all run on one goroutine. Deferred work (re-highlight
// and history settling) goes through a Scheduler; Loop is a Scheduler that
// hands callbacks back to the goroutine that drains it.
package editor
