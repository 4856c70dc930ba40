// Package term hosts an editor in a terminal.
//
// The terminal stands in for a browser: a Session owns a dom.Document
// with one editable region, turns tcell events into key and clipboard
// events for a host.Browser, and paints the region's highlighted text.
//
// Run wires a Session to a real screen. It starts an errgroup with the
// tcell event pump and, when configured, a config file watcher; the
// calling goroutine runs the event loop and the editor's scheduled
// callbacks, so the editor is only ever touched from one goroutine.
//
// Terminal shortcuts that sit outside the editor:
//
//	Ctrl+Q   quit
//	Ctrl+S   save
//	Ctrl+C   copy to the system clipboard
//	Ctrl+X   cut to the system clipboard
//	Ctrl+V   paste from the system clipboard
//	Ctrl+Y   redo
package term
