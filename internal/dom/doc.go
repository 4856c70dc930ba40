// Package dom models the editable region the editor operates on.
//
// The region is a tree of golang.org/x/net/html nodes. A Document owns
// everything a browsing context would provide around that tree:
//
//   - The live selection (anchor/focus boundary points)
//   - Keyboard focus
//   - Event listeners and dispatch
//   - Whether plain-text-only editable regions are supported
//
// Boundary points follow DOM rules: on a text node the offset counts
// characters (Unicode code points), on an element it is a child index.
// Mutations made through the Document adjust the live selection the way a
// browser adjusts live ranges; mutations made directly on *html.Node values
// (for example by a highlighter) do not.
//
// # Traversal
//
// All tree walks use an explicit stack. The depth of the region is
// controlled by whoever writes into it (pasted markup, highlighters), so
// nothing here recurses.
//
// # Thread Safety
//
// A Document is not safe for concurrent use. All access must happen on the
// host's event loop.
package dom
