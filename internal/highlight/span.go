package highlight

import (
	"sort"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/keyjar/internal/dom"
)

// Span classifies the characters [Start, End) of a text.
type Span struct {
	Start int
	End   int
	Class string
}

// Len returns the number of characters covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Normalize clamps spans to [0, n), drops empty or unclassified spans and
// overlaps, and sorts the rest by start.
func Normalize(spans []Span, n int) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		s.Start = max(s.Start, 0)
		s.End = min(s.End, n)
		if s.Class == "" || s.Start >= s.End {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})

	kept := out[:0]
	end := 0
	for _, s := range out {
		if s.Start < end {
			continue
		}
		kept = append(kept, s)
		end = s.End
	}
	return kept
}

// Apply replaces the children of root with text nodes and
// <span class="..."> elements built from text and spans. The text content
// of root afterwards equals text.
//
// Apply edits the tree directly; it does not go through a dom.Document, so
// the live selection is left pointing at detached nodes until the caller
// restores it.
func Apply(root *html.Node, text string, spans []Span) {
	for root.FirstChild != nil {
		root.RemoveChild(root.FirstChild)
	}
	if text == "" {
		return
	}

	runes := []rune(text)
	at := 0
	for _, s := range Normalize(spans, len(runes)) {
		if s.Start > at {
			root.AppendChild(dom.NewText(string(runes[at:s.Start])))
		}
		el := dom.NewElement(atom.Span.String(), html.Attribute{Key: "class", Val: s.Class})
		el.AppendChild(dom.NewText(string(runes[s.Start:s.End])))
		root.AppendChild(el)
		at = s.End
	}
	if at < len(runes) {
		root.AppendChild(dom.NewText(string(runes[at:])))
	}
}

// RuneOffsets maps byte offsets of s to character offsets. The returned
// slice has len(s)+1 entries; offsets inside a multi-byte sequence map to
// the character that contains them.
func RuneOffsets(s string) []int {
	m := make([]int, len(s)+1)
	n := 0
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		for j := 0; j < size; j++ {
			m[i+j] = n
		}
		i += size
		n++
	}
	m[len(s)] = n
	return m
}
