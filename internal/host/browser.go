package host

import (
	"errors"

	"golang.org/x/net/html"

	"github.com/dshills/keyjar/internal/caret"
	"github.com/dshills/keyjar/internal/dom"
	"github.com/dshills/keyjar/internal/input/key"
)

// Browser delivers input to one region and performs default actions.
type Browser struct {
	doc   *dom.Document
	root  *html.Node
	codec *caret.Codec

	// clipboard holds the text of the last copy or cut.
	clipboard string
}

// NewBrowser creates a browser for the region rooted at root.
func NewBrowser(doc *dom.Document, root *html.Node) *Browser {
	return &Browser{
		doc:   doc,
		root:  root,
		codec: caret.NewCodec(doc, root),
	}
}

// Document returns the document events are dispatched through.
func (b *Browser) Document() *dom.Document {
	return b.doc
}

// Root returns the region.
func (b *Browser) Root() *html.Node {
	return b.root
}

// Text returns the text of the region.
func (b *Browser) Text() string {
	return dom.TextContent(b.root)
}

// Clipboard returns the text of the last copy or cut.
func (b *Browser) Clipboard() string {
	return b.clipboard
}

// SetClipboard replaces the clipboard text, as another application would.
func (b *Browser) SetClipboard(text string) {
	b.clipboard = text
}

// Position returns the selection as character offsets.
func (b *Browser) Position() (caret.Position, error) {
	return b.codec.Save()
}

// Select selects the text between anchor and focus.
func (b *Browser) Select(anchor, focus int) {
	b.codec.Restore(caret.NewPosition(anchor, focus))
}

// SetCaret places a collapsed caret at offset.
func (b *Browser) SetCaret(offset int) {
	b.codec.Restore(caret.Collapsed(offset))
}

// Focus focuses the region. Without a selection inside it the caret is
// placed at the start.
func (b *Browser) Focus() error {
	err := b.doc.Focus(b.root)
	sel := b.doc.Selection()
	if sel.IsEmpty() || !dom.Contains(b.root, sel.AnchorNode) || !dom.Contains(b.root, sel.FocusNode) {
		b.doc.Collapse(b.root, 0)
	}
	return err
}

// Blur removes focus from the region.
func (b *Browser) Blur() error {
	return b.doc.Blur()
}

// target is the element keyboard and clipboard events are sent to.
func (b *Browser) target() *html.Node {
	if active := b.doc.ActiveElement(); active != nil {
		return active
	}
	return b.root
}

// Key sends a keydown, performs the default action unless a listener
// prevented it, and sends the matching keyup.
func (b *Browser) Key(ev key.Event) error {
	down := dom.NewKeyEvent(dom.EventKeyDown, ev)
	err := b.doc.Dispatch(b.target(), down)
	if !down.DefaultPrevented() {
		err = errors.Join(err, b.defaultKey(ev))
	}
	up := dom.NewKeyEvent(dom.EventKeyUp, ev)
	return errors.Join(err, b.doc.Dispatch(b.target(), up))
}

// Press parses a key specification like "Ctrl+Shift+Z" and sends it.
func (b *Browser) Press(spec string) error {
	ev, err := key.Parse(spec)
	if err != nil {
		return err
	}
	return b.Key(ev)
}

// Type sends one key per character of s. Newlines are sent as Enter and
// tabs as Tab.
func (b *Browser) Type(s string) error {
	for _, r := range s {
		var ev key.Event
		switch r {
		case '\n':
			ev = key.NewSpecialEvent(key.KeyEnter, key.ModNone)
		case '\t':
			ev = key.NewSpecialEvent(key.KeyTab, key.ModNone)
		default:
			ev = key.NewRuneEvent(r, key.ModNone)
		}
		if err := b.Key(ev); err != nil {
			return err
		}
	}
	return nil
}

// Compose sends ev as part of an input method composition. Composition
// text is committed by the input method, so there is no default action.
func (b *Browser) Compose(ev key.Event) error {
	down := dom.NewKeyEvent(dom.EventKeyDown, ev)
	down.IsComposing = true
	up := dom.NewKeyEvent(dom.EventKeyUp, ev)
	up.IsComposing = true
	return errors.Join(
		b.doc.Dispatch(b.target(), down),
		b.doc.Dispatch(b.target(), up),
	)
}

// Paste sends a paste event carrying text. Unless a listener prevents it,
// the text replaces the selection.
func (b *Browser) Paste(text string) error {
	dt := dom.NewDataTransfer()
	dt.SetData(dom.MIMEText, text)
	ev := dom.NewClipboardEvent(dom.EventPaste, dt)
	err := b.doc.Dispatch(b.target(), ev)
	if !ev.DefaultPrevented() {
		err = errors.Join(err, b.replaceSelection(text))
	}
	return err
}

// Cut sends a cut event and returns the text that reached the clipboard.
// A listener that prevents the default supplies the text through the
// event's payload; otherwise the selection is copied and deleted.
func (b *Browser) Cut() (string, error) {
	ev := dom.NewClipboardEvent(dom.EventCut, nil)
	err := b.doc.Dispatch(b.target(), ev)
	if ev.DefaultPrevented() {
		b.clipboard = ev.Clipboard.GetData(dom.MIMEText)
		return b.clipboard, err
	}
	b.clipboard = b.selectedText()
	return b.clipboard, errors.Join(err, b.replaceSelection(""))
}

// Copy sends a copy event and returns the text that reached the clipboard.
func (b *Browser) Copy() (string, error) {
	ev := dom.NewClipboardEvent(dom.EventCopy, nil)
	err := b.doc.Dispatch(b.target(), ev)
	if ev.DefaultPrevented() {
		b.clipboard = ev.Clipboard.GetData(dom.MIMEText)
	} else {
		b.clipboard = b.selectedText()
	}
	return b.clipboard, err
}

// SelectAll selects the whole region.
func (b *Browser) SelectAll() {
	b.doc.SetBaseAndExtent(b.root, 0, b.root, dom.ChildCount(b.root))
}

func (b *Browser) selectedText() string {
	pos, err := b.codec.Save()
	if err != nil {
		return ""
	}
	return runeSlice(b.Text(), pos.Start, pos.End)
}
