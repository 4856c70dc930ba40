package dom

import (
	"fmt"

	"golang.org/x/net/html"
)

// Selection is a snapshot of the live selection.
// A zero Selection means there is no selection at all.
type Selection struct {
	AnchorNode   *html.Node
	AnchorOffset int
	FocusNode    *html.Node
	FocusOffset  int
}

// IsEmpty reports whether the selection has no anchor or no focus.
func (s Selection) IsEmpty() bool {
	return s.AnchorNode == nil || s.FocusNode == nil
}

// IsCollapsed reports whether anchor and focus are the same point.
func (s Selection) IsCollapsed() bool {
	return s.AnchorNode == s.FocusNode && s.AnchorOffset == s.FocusOffset
}

type boundary struct {
	node *html.Node
	off  int
}

// Document owns the live selection, focus and listeners for one or more
// editable regions.
type Document struct {
	anchor boundary
	focus  boundary

	active *html.Node

	plaintextOnly bool

	listeners    []listener
	nextListener uint64
}

// DocumentOption configures a Document.
type DocumentOption func(*Document)

// WithPlaintextOnly sets whether plaintext-only editable regions are
// supported. Documents without it are treated as legacy environments.
func WithPlaintextOnly(supported bool) DocumentOption {
	return func(d *Document) {
		d.plaintextOnly = supported
	}
}

// NewDocument creates a document. Plaintext-only regions are supported
// unless disabled with WithPlaintextOnly(false).
func NewDocument(opts ...DocumentOption) *Document {
	d := &Document{plaintextOnly: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// PlaintextOnly reports whether plaintext-only editable regions are
// supported.
func (d *Document) PlaintextOnly() bool {
	return d.plaintextOnly
}

// Selection returns the current selection.
func (d *Document) Selection() Selection {
	return Selection{
		AnchorNode:   d.anchor.node,
		AnchorOffset: d.anchor.off,
		FocusNode:    d.focus.node,
		FocusOffset:  d.focus.off,
	}
}

// SetBaseAndExtent replaces the selection. Offsets are clamped to the
// length of their node.
func (d *Document) SetBaseAndExtent(anchor *html.Node, anchorOffset int, focus *html.Node, focusOffset int) {
	d.anchor = boundary{anchor, clamp(anchorOffset, 0, nodeLength(anchor))}
	d.focus = boundary{focus, clamp(focusOffset, 0, nodeLength(focus))}
}

// Collapse places a collapsed selection at (n, offset).
func (d *Document) Collapse(n *html.Node, offset int) {
	d.SetBaseAndExtent(n, offset, n, offset)
}

// RemoveAllRanges clears the selection.
func (d *Document) RemoveAllRanges() {
	d.anchor = boundary{}
	d.focus = boundary{}
}

// Focus moves keyboard focus to n, sending blur to the previously focused
// element and focus to n.
func (d *Document) Focus(n *html.Node) error {
	if d.active == n {
		return nil
	}
	var err error
	if prev := d.active; prev != nil {
		d.active = nil
		err = d.Dispatch(prev, &Event{Type: EventBlur})
	}
	d.active = n
	if n == nil {
		return err
	}
	if ferr := d.Dispatch(n, &Event{Type: EventFocus}); ferr != nil {
		return ferr
	}
	return err
}

// Blur removes keyboard focus.
func (d *Document) Blur() error {
	return d.Focus(nil)
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *html.Node {
	return d.active
}

// HasFocus reports whether n is the focused element.
func (d *Document) HasFocus(n *html.Node) bool {
	return n != nil && d.active == n
}

// InsertBefore inserts n into parent before ref (append when ref is nil),
// shifting selection offsets that point past the insertion index.
func (d *Document) InsertBefore(parent, n, ref *html.Node) {
	idx := ChildCount(parent)
	if ref != nil {
		idx = ChildIndex(ref)
	}
	for _, b := range d.boundaries() {
		if b.node == parent && b.off > idx {
			b.off++
		}
	}
	parent.InsertBefore(n, ref)
}

// AppendChild appends n to parent.
func (d *Document) AppendChild(parent, n *html.Node) {
	d.InsertBefore(parent, n, nil)
}

// RemoveChild detaches n from its parent. Selection points inside n move to
// the position n occupied.
func (d *Document) RemoveChild(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	idx := ChildIndex(n)
	for _, b := range d.boundaries() {
		switch {
		case b.node != nil && Contains(n, b.node):
			b.node, b.off = parent, idx
		case b.node == parent && b.off > idx:
			b.off--
		}
	}
	parent.RemoveChild(n)
}

// ReplaceChildren removes every child of parent and appends nodes.
func (d *Document) ReplaceChildren(parent *html.Node, nodes ...*html.Node) {
	for parent.LastChild != nil {
		d.RemoveChild(parent.LastChild)
	}
	for _, n := range nodes {
		if n.Parent != nil {
			d.RemoveChild(n)
		}
		d.AppendChild(parent, n)
	}
}

// SetTextContent replaces the children of n with a single text node.
// An empty string leaves n without children.
func (d *Document) SetTextContent(n *html.Node, s string) {
	if s == "" {
		d.ReplaceChildren(n)
		return
	}
	d.ReplaceChildren(n, NewText(s))
}

// SetInnerHTML replaces the children of n with parsed markup.
func (d *Document) SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := ParseFragment(markup)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMarkup, err)
	}
	d.ReplaceChildren(n, nodes...)
	return nil
}

// Normalize removes empty text nodes and merges adjacent text nodes in the
// subtree rooted at root. Selection points are carried into the merged
// nodes.
func (d *Document) Normalize(root *html.Node) {
	elements := []*html.Node{root}
	Walk(root, func(n *html.Node) bool {
		if n.FirstChild != nil {
			elements = append(elements, n)
		}
		return true
	})
	for _, el := range elements {
		for c := el.FirstChild; c != nil; {
			next := c.NextSibling
			if !IsText(c) {
				c = next
				continue
			}
			if c.Data == "" {
				d.RemoveChild(c)
				c = next
				continue
			}
			for next != nil && IsText(next) {
				d.mergeText(c, next)
				next = c.NextSibling
			}
			c = next
		}
	}
}

// mergeText appends the data of b to a and removes b.
func (d *Document) mergeText(a, b *html.Node) {
	length := TextLen(a)
	idx := ChildIndex(b)
	for _, bp := range d.boundaries() {
		switch {
		case bp.node == b:
			bp.node, bp.off = a, length+bp.off
		case bp.node == b.Parent && bp.off == idx:
			bp.node, bp.off = a, length
		}
	}
	a.Data += b.Data
	d.RemoveChild(b)
}

// InsertHTML replaces the selection inside root with parsed markup and
// places a collapsed caret after it. It is the rich-insert primitive legacy
// environments use in place of plain-text editing.
func (d *Document) InsertHTML(root *html.Node, markup string) error {
	if d.anchor.node == nil || d.focus.node == nil {
		return ErrNoSelection
	}
	if !Contains(root, d.anchor.node) || !Contains(root, d.focus.node) {
		return ErrNoSelection
	}
	nodes, err := ParseFragment(markup)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMarkup, err)
	}

	start := d.textBoundary(d.anchor)
	end := d.textBoundary(d.focus)

	// Order the endpoints by walking text nodes.
	var texts []*html.Node
	Walk(root, func(n *html.Node) bool {
		if IsText(n) {
			texts = append(texts, n)
		}
		return true
	})
	si, ei := indexOf(texts, start.node), indexOf(texts, end.node)
	if si > ei || (si == ei && start.off > end.off) {
		start, end = end, start
		si, ei = ei, si
	}

	// Delete the selected characters.
	if si == ei {
		start.node.Data = runeSlice(start.node.Data, 0, start.off) + runeSlice(start.node.Data, end.off, TextLen(start.node))
	} else {
		start.node.Data = runeSlice(start.node.Data, 0, start.off)
		for _, t := range texts[si+1 : ei] {
			t.Data = ""
		}
		end.node.Data = runeSlice(end.node.Data, end.off, TextLen(end.node))
	}

	// Split at the caret and insert the fragment between both halves.
	tail := NewText(runeSlice(start.node.Data, start.off, TextLen(start.node)))
	start.node.Data = runeSlice(start.node.Data, 0, start.off)
	parent := start.node.Parent
	parent.InsertBefore(tail, start.node.NextSibling)
	for _, n := range nodes {
		parent.InsertBefore(n, tail)
	}
	d.Collapse(tail, 0)
	return nil
}

// textBoundary converts an element boundary to a text boundary by inserting
// an empty text node at the child offset.
func (d *Document) textBoundary(b boundary) boundary {
	if IsText(b.node) {
		return b
	}
	t := NewText("")
	d.InsertBefore(b.node, t, ChildAt(b.node, b.off))
	return boundary{t, 0}
}

func (d *Document) boundaries() []*boundary {
	return []*boundary{&d.anchor, &d.focus}
}

func indexOf(nodes []*html.Node, n *html.Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// nodeLength is the DOM length of a node: characters for text, child count
// for elements.
func nodeLength(n *html.Node) int {
	if n == nil {
		return 0
	}
	if IsText(n) {
		return TextLen(n)
	}
	return ChildCount(n)
}
