// Package host plays the part of the browser around an editable region.
//
// Browser delivers keyboard, focus and clipboard events to a dom.Document
// and performs the default action for every event no listener prevented:
// typing characters, deleting graphemes, moving and extending the caret,
// select-all and the clipboard operations. The terminal front end drives
// an editor through it, and tests use it to type at an editor the way a
// user would.
//
// Clock is a Scheduler whose time only moves when told to, for tests that
// need to step through debounced work.
package host
