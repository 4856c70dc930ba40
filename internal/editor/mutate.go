package editor

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/keyjar/internal/caret"
)

// insert replaces the selection with text and leaves a collapsed caret
// after it.
//
// Text ending in a newline at the very end of the region gets a second
// newline, since a single trailing newline does not produce a visible
// empty line.
func (e *Editor) insert(text string) error {
	pos, err := e.codec.Save()
	if err != nil {
		return err
	}
	content := e.String()
	before := runeSlice(content, 0, pos.Start)
	after := runeSlice(content, pos.End, runeLen(content))

	written := text
	if after == "" && strings.HasSuffix(text, "\n") {
		written += "\n"
	}

	if e.legacy() {
		if err := e.doc.InsertHTML(e.root, html.EscapeString(written)); err != nil {
			return err
		}
	} else {
		e.doc.SetTextContent(e.root, before+written+after)
	}
	e.codec.Restore(caret.Collapsed(pos.Start + runeLen(text)))
	return nil
}

// beforeCaret returns the text before the start of the selection.
func (e *Editor) beforeCaret(pos caret.Position) string {
	return runeSlice(e.String(), 0, pos.Start)
}

// afterCaret returns the text after the end of the selection.
func (e *Editor) afterCaret(pos caret.Position) string {
	content := e.String()
	return runeSlice(content, pos.End, runeLen(content))
}

// normalizeNewlines converts CRLF and CR line endings to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
