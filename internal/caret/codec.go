package caret

import (
	"golang.org/x/net/html"

	"github.com/dshills/keyjar/internal/dom"
)

// Codec saves and restores the selection of one editable region.
type Codec struct {
	doc  *dom.Document
	root *html.Node
}

// NewCodec creates a codec for the region rooted at root.
func NewCodec(doc *dom.Document, root *html.Node) *Codec {
	return &Codec{doc: doc, root: root}
}

// Save returns the current selection as offsets into the region's text.
//
// Endpoints that sit on an element are first moved into a new empty text
// node at that child offset, so the walk only has to compare text nodes.
// The region is normalized afterwards, which removes those nodes again.
func (c *Codec) Save() (Position, error) {
	sel := c.doc.Selection()
	if sel.IsEmpty() {
		return Position{}, ErrNoSelection
	}
	if !dom.Contains(c.root, sel.AnchorNode) || !dom.Contains(c.root, sel.FocusNode) {
		return Position{}, ErrNoSelection
	}

	if sel.AnchorNode == c.root && sel.FocusNode == c.root {
		if pos, ok := c.saveRootEdges(sel); ok {
			return pos, nil
		}
	}

	anchor, anchorOff := sel.AnchorNode, sel.AnchorOffset
	if dom.IsElement(anchor) {
		anchor, anchorOff = c.split(anchor, anchorOff), 0
	}

	// The split shifted the live focus if it pointed past the new node.
	sel = c.doc.Selection()
	focus, focusOff := sel.FocusNode, sel.FocusOffset
	switch {
	case sel.FocusNode == sel.AnchorNode && sel.FocusOffset == sel.AnchorOffset:
		focus, focusOff = anchor, anchorOff
	case dom.IsElement(focus):
		focus, focusOff = c.split(focus, focusOff), 0
	}

	var (
		anchorAt, focusAt = -1, -1
		current           int
	)
	dom.Walk(c.root, func(n *html.Node) bool {
		if n == anchor {
			anchorAt = current + anchorOff
		}
		if n == focus {
			focusAt = current + focusOff
		}
		if anchorAt >= 0 && focusAt >= 0 {
			return false
		}
		current += dom.TextLen(n)
		return true
	})
	c.doc.Normalize(c.root)

	if anchorAt < 0 || focusAt < 0 {
		return Position{}, ErrNoSelection
	}
	return NewPosition(anchorAt, focusAt), nil
}

// saveRootEdges handles a selection whose endpoints are both child offsets
// of the root. When each offset is at the very start or past the last
// child, the result is known without walking.
func (c *Codec) saveRootEdges(sel dom.Selection) (Position, bool) {
	count := dom.ChildCount(c.root)
	edge := func(off int) (int, bool) {
		switch {
		case off <= 0:
			return 0, true
		case off >= count:
			return len([]rune(dom.TextContent(c.root))), true
		default:
			return 0, false
		}
	}
	a, ok := edge(sel.AnchorOffset)
	if !ok {
		return Position{}, false
	}
	f, ok := edge(sel.FocusOffset)
	if !ok {
		return Position{}, false
	}
	return NewPosition(a, f), true
}

// split inserts an empty text node into el at child offset off.
func (c *Codec) split(el *html.Node, off int) *html.Node {
	t := dom.NewText("")
	c.doc.InsertBefore(el, t, dom.ChildAt(el, off))
	return t
}

// Restore places the selection at pos. Offsets past the end of the text put
// the endpoint after the last child of the region; negative offsets count as
// zero.
func (c *Codec) Restore(pos Position) {
	lo, hi := max(pos.Start, 0), max(pos.End, 0)
	if lo > hi {
		lo, hi = hi, lo
	}

	var (
		startNode, endNode *html.Node
		startOff, endOff   int
		current            int
	)
	dom.Walk(c.root, func(n *html.Node) bool {
		if !dom.IsText(n) {
			return true
		}
		length := dom.TextLen(n)
		if current+length > lo {
			if startNode == nil {
				startNode, startOff = n, lo-current
			}
			if current+length > hi {
				endNode, endOff = n, hi-current
				return false
			}
		}
		current += length
		return true
	})

	startNode, startOff = c.editable(startNode, startOff)
	endNode, endOff = c.editable(endNode, endOff)
	if startNode == nil {
		startNode, startOff = c.root, dom.ChildCount(c.root)
	}
	if endNode == nil {
		endNode, endOff = c.root, dom.ChildCount(c.root)
	}

	if pos.Dir == DirBackward {
		c.doc.SetBaseAndExtent(endNode, endOff, startNode, startOff)
	} else {
		c.doc.SetBaseAndExtent(startNode, startOff, endNode, endOff)
	}
	c.doc.Normalize(c.root)
}

// editable moves a target inside a contenteditable="false" subtree to a new
// empty text node just before that subtree.
func (c *Codec) editable(n *html.Node, off int) (*html.Node, int) {
	el := c.uneditable(n)
	if el == nil {
		return n, off
	}
	t := dom.NewText("")
	c.doc.InsertBefore(el.Parent, t, el)
	return t, 0
}

// uneditable returns the outermost contenteditable="false" ancestor of n
// below the root, or nil.
func (c *Codec) uneditable(n *html.Node) *html.Node {
	var found *html.Node
	for p := n; p != nil && p != c.root; p = p.Parent {
		if dom.IsUneditable(p) {
			found = p
		}
	}
	return found
}
