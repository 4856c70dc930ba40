package dom

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element node.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// NewText creates a detached text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// TextLen returns the length of a text node in characters.
// Every other node type has zero width.
func TextLen(n *html.Node) int {
	if !IsText(n) {
		return 0
	}
	return utf8.RuneCountInString(n.Data)
}

// Attr returns the value of the attribute named key.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the attribute named key.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// IsUneditable reports whether n is an element explicitly marked
// contenteditable="false".
func IsUneditable(n *html.Node) bool {
	if !IsElement(n) {
		return false
	}
	v, ok := Attr(n, "contenteditable")
	return ok && strings.EqualFold(strings.TrimSpace(v), "false")
}

// Contains reports whether n is root or one of its descendants.
func Contains(root, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// ChildCount returns the number of children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// ChildAt returns the i-th child of n, or nil when i is out of range.
func ChildAt(n *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

// ChildIndex returns the index of n among its siblings.
func ChildIndex(n *html.Node) int {
	i := 0
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		i++
	}
	return i
}

// Walk visits the descendants of root in document order. Root itself is not
// visited. Returning false from fn stops the walk.
//
// The walk keeps pending siblings and children on an explicit stack: after a
// node is visited its next sibling is pushed, then its first child, so the
// child is popped first.
func Walk(root *html.Node, fn func(n *html.Node) bool) {
	if root == nil || root.FirstChild == nil {
		return
	}
	stack := []*html.Node{root.FirstChild}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}
		if n.NextSibling != nil {
			stack = append(stack, n.NextSibling)
		}
		if n.FirstChild != nil {
			stack = append(stack, n.FirstChild)
		}
	}
}

// TextContent returns the concatenated data of all text nodes under root.
func TextContent(root *html.Node) string {
	if IsText(root) {
		return root.Data
	}
	var sb strings.Builder
	Walk(root, func(n *html.Node) bool {
		if IsText(n) {
			sb.WriteString(n.Data)
		}
		return true
	})
	return sb.String()
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// ParseFragment parses markup as the content of a div element.
func ParseFragment(markup string) ([]*html.Node, error) {
	context := NewElement("div")
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// runeSlice returns s[from:to] with from and to counted in characters.
func runeSlice(s string, from, to int) string {
	r := []rune(s)
	from = clamp(from, 0, len(r))
	to = clamp(to, from, len(r))
	return string(r[from:to])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
