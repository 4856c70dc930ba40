package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"

	"github.com/dshills/keyjar/internal/caret"
	"github.com/dshills/keyjar/internal/dom"
)

// DefaultTabWidth is the number of cells a tab stop spans.
const DefaultTabWidth = 4

// glyph is one character of the region with its highlight class.
type glyph struct {
	r     rune
	class string
}

// glyphs flattens the region into characters, each tagged with the class
// of its nearest classed ancestor below root.
func glyphs(root *html.Node) []glyph {
	var out []glyph
	dom.Walk(root, func(n *html.Node) bool {
		if !dom.IsText(n) {
			return true
		}
		class := classOf(root, n)
		for _, r := range n.Data {
			out = append(out, glyph{r, class})
		}
		return true
	})
	return out
}

func classOf(root, n *html.Node) string {
	for p := n.Parent; p != nil && p != root; p = p.Parent {
		if c, ok := dom.Attr(p, "class"); ok && c != "" {
			return c
		}
	}
	return ""
}

// cellPos is a screen location relative to the text origin.
type cellPos struct {
	row, col int
}

// view paints the region and a status line.
type view struct {
	theme    Theme
	tabWidth int

	// top and left scroll the text so the caret stays visible.
	top, left int
}

// locate returns the cell of the character offset in gs.
func (v *view) locate(gs []glyph, offset int) cellPos {
	var p cellPos
	for i, g := range gs {
		if i == offset {
			break
		}
		p = v.advance(p, g.r)
	}
	return p
}

func (v *view) advance(p cellPos, r rune) cellPos {
	switch {
	case r == '\n':
		return cellPos{p.row + 1, 0}
	case r == '\t':
		return cellPos{p.row, (p.col/v.tabWidth + 1) * v.tabWidth}
	default:
		return cellPos{p.row, p.col + runewidth.RuneWidth(r)}
	}
}

// scroll adjusts top and left so cur fits a width x height text area.
func (v *view) scroll(cur cellPos, width, height int) {
	if height < 1 || width < 1 {
		return
	}
	if cur.row < v.top {
		v.top = cur.row
	}
	if cur.row >= v.top+height {
		v.top = cur.row - height + 1
	}
	if cur.col < v.left {
		v.left = cur.col
	}
	if cur.col >= v.left+width {
		v.left = cur.col - width + 1
	}
}

// status is the content of the bottom line.
type status struct {
	name     string
	modified bool
	language string
	message  string
}

// draw paints the region text and the status line, and places the
// terminal cursor at the caret.
func (v *view) draw(s tcell.Screen, root *html.Node, pos caret.Position, hasPos bool, st status) {
	width, height := s.Size()
	s.Fill(' ', v.theme.Base)
	if width <= 0 || height <= 0 {
		return
	}
	textHeight := height - 1

	gs := glyphs(root)
	cur := v.locate(gs, pos.Focus())
	v.scroll(cur, width, textHeight)

	var p cellPos
	for i, g := range gs {
		style := v.theme.Style(g.class)
		if hasPos && i >= pos.Start && i < pos.End {
			style = v.theme.Selection
		}
		next := v.advance(p, g.r)
		if g.r != '\n' {
			v.put(s, p, next, g.r, style, width, textHeight)
		}
		p = next
	}

	if hasPos && cur.row-v.top < textHeight {
		s.ShowCursor(cur.col-v.left, cur.row-v.top)
	} else {
		s.HideCursor()
	}
	v.drawStatus(s, st, cur, width, height-1)
}

// put draws one character spanning the cells from p to next.
func (v *view) put(s tcell.Screen, p, next cellPos, r rune, style tcell.Style, width, height int) {
	y := p.row - v.top
	if y < 0 || y >= height {
		return
	}
	if r == '\t' {
		for col := p.col; col < next.col; col++ {
			if x := col - v.left; x >= 0 && x < width {
				s.SetContent(x, y, ' ', nil, style)
			}
		}
		return
	}
	if next.col == p.col {
		// Zero width: combine with the previous cell.
		x := p.col - v.left - 1
		if x >= 0 && x < width {
			mainc, comb, st, _ := s.GetContent(x, y)
			s.SetContent(x, y, mainc, append(comb, r), st)
		}
		return
	}
	if x := p.col - v.left; x >= 0 && x < width {
		s.SetContent(x, y, r, nil, style)
	}
}

func (v *view) drawStatus(s tcell.Screen, st status, cur cellPos, width, y int) {
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, v.theme.Status)
	}

	name := st.name
	if name == "" {
		name = "[scratch]"
	}
	if st.modified {
		name += " [+]"
	}
	left := " " + name
	if st.message != "" {
		left += "  " + st.message
	}
	right := fmt.Sprintf("Ln %d, Col %d", cur.row+1, cur.col+1)
	if st.language != "" {
		right += "  " + st.language
	}
	right += " "

	drawString(s, 0, y, left, v.theme.Status, width)
	if rx := width - runewidth.StringWidth(right); rx > runewidth.StringWidth(left) {
		drawString(s, rx, y, right, v.theme.Status, width)
	}
}

// drawString writes str starting at x and returns the next free column.
func drawString(s tcell.Screen, x, y int, str string, style tcell.Style, width int) int {
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
