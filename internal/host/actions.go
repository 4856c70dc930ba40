package host

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/keyjar/internal/caret"
	"github.com/dshills/keyjar/internal/dom"
	"github.com/dshills/keyjar/internal/input/key"
)

// defaultKey performs what a browser does for an unprevented keydown.
func (b *Browser) defaultKey(ev key.Event) error {
	mods := ev.Modifiers
	if mods.HasCtrlOrMeta() {
		switch {
		case ev.IsLetter('a'):
			b.SelectAll()
		case ev.IsLetter('c'):
			_, err := b.Copy()
			return err
		case ev.IsLetter('x'):
			_, err := b.Cut()
			return err
		case ev.IsLetter('v'):
			return b.Paste(b.clipboard)
		}
		return nil
	}
	if mods.HasAlt() {
		return nil
	}
	if ev.IsChar() {
		return b.replaceSelection(string(ev.Rune))
	}

	switch ev.Key {
	case key.KeyEnter:
		return b.replaceSelection("\n")
	case key.KeyBackspace:
		return b.deleteGrapheme(false)
	case key.KeyDelete:
		return b.deleteGrapheme(true)
	case key.KeyLeft, key.KeyRight, key.KeyHome, key.KeyEnd, key.KeyUp, key.KeyDown:
		b.move(ev.Key, mods.HasShift())
	}
	return nil
}

// replaceSelection replaces the selection with s. A collapsed caret in a
// text node is edited in place so the surrounding markup survives.
func (b *Browser) replaceSelection(s string) error {
	sel := b.doc.Selection()
	if !sel.IsEmpty() && sel.IsCollapsed() && dom.IsText(sel.AnchorNode) && dom.Contains(b.root, sel.AnchorNode) {
		n, off := sel.AnchorNode, sel.AnchorOffset
		n.Data = runeSlice(n.Data, 0, off) + s + runeSlice(n.Data, off, dom.TextLen(n))
		b.doc.Collapse(n, off+runeLen(s))
		return nil
	}

	pos, err := b.codec.Save()
	if err != nil {
		return err
	}
	b.splice(pos.Start, pos.End, s)
	return nil
}

// splice replaces the characters between start and end with s and puts
// the caret after s.
func (b *Browser) splice(start, end int, s string) {
	text := b.Text()
	b.doc.SetTextContent(b.root, runeSlice(text, 0, start)+s+runeSlice(text, end, runeLen(text)))
	b.codec.Restore(caret.Collapsed(start + runeLen(s)))
}

// deleteGrapheme deletes the selection, or the grapheme cluster before
// (or after, when forward) the caret.
func (b *Browser) deleteGrapheme(forward bool) error {
	pos, err := b.codec.Save()
	if err != nil {
		return err
	}
	if !pos.IsCollapsed() {
		b.splice(pos.Start, pos.End, "")
		return nil
	}
	text := b.Text()
	if forward {
		if end := nextBoundary(text, pos.Start); end > pos.Start {
			b.splice(pos.Start, end, "")
		}
		return nil
	}
	if start := prevBoundary(text, pos.Start); start < pos.Start {
		b.splice(start, pos.Start, "")
	}
	return nil
}

// move moves the focus of the selection. Without extend the selection
// collapses; Left and Right then collapse a range to its edge.
func (b *Browser) move(k key.Key, extend bool) {
	pos, err := b.codec.Save()
	if err != nil {
		return
	}
	text := b.Text()
	focus := pos.Focus()

	var target int
	switch k {
	case key.KeyLeft:
		if !extend && !pos.IsCollapsed() {
			target = pos.Start
		} else {
			target = prevBoundary(text, focus)
		}
	case key.KeyRight:
		if !extend && !pos.IsCollapsed() {
			target = pos.End
		} else {
			target = nextBoundary(text, focus)
		}
	case key.KeyHome:
		target = lineStart(text, focus)
	case key.KeyEnd:
		target = lineEnd(text, focus)
	case key.KeyUp:
		target = lineAbove(text, focus)
	case key.KeyDown:
		target = lineBelow(text, focus)
	}

	if extend {
		b.codec.Restore(caret.NewPosition(pos.Anchor(), target))
	} else {
		b.codec.Restore(caret.Collapsed(target))
	}
}

// graphemeBounds returns the character offsets of the grapheme cluster
// boundaries of s, including 0 and the length of s.
func graphemeBounds(s string) []int {
	bounds := []int{0}
	g := uniseg.NewGraphemes(s)
	off := 0
	for g.Next() {
		off += len(g.Runes())
		bounds = append(bounds, off)
	}
	return bounds
}

// prevBoundary returns the last grapheme boundary before off.
func prevBoundary(s string, off int) int {
	prev := 0
	for _, b := range graphemeBounds(s) {
		if b >= off {
			break
		}
		prev = b
	}
	return prev
}

// nextBoundary returns the first grapheme boundary after off.
func nextBoundary(s string, off int) int {
	bounds := graphemeBounds(s)
	for _, b := range bounds {
		if b > off {
			return b
		}
	}
	return bounds[len(bounds)-1]
}

func lineStart(s string, off int) int {
	r := []rune(s)
	off = min(off, len(r))
	for off > 0 && r[off-1] != '\n' {
		off--
	}
	return off
}

func lineEnd(s string, off int) int {
	r := []rune(s)
	for off < len(r) && r[off] != '\n' {
		off++
	}
	return min(off, len(r))
}

// lineAbove returns the offset in the previous line at the same column,
// clamped to that line. On the first line it returns 0.
func lineAbove(s string, off int) int {
	start := lineStart(s, off)
	if start == 0 {
		return 0
	}
	col := off - start
	prevStart := lineStart(s, start-1)
	return min(prevStart+col, start-1)
}

// lineBelow returns the offset in the next line at the same column,
// clamped to that line. On the last line it returns the end of the text.
func lineBelow(s string, off int) int {
	end := lineEnd(s, off)
	if end >= runeLen(s) {
		return runeLen(s)
	}
	col := off - lineStart(s, off)
	nextStart := end + 1
	return min(nextStart+col, lineEnd(s, nextStart))
}

func runeLen(s string) int {
	return len([]rune(s))
}

func runeSlice(s string, from, to int) string {
	r := []rune(s)
	from = min(max(from, 0), len(r))
	to = min(max(to, from), len(r))
	return string(r[from:to])
}
