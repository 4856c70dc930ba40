package host

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/dshills/keyjar/internal/caret"
	"github.com/dshills/keyjar/internal/dom"
	"github.com/dshills/keyjar/internal/input/key"
)

func newBrowser(t *testing.T, text string, offset int) *Browser {
	t.Helper()
	doc := dom.NewDocument()
	root := dom.NewElement("div")
	doc.SetTextContent(root, text)
	b := NewBrowser(doc, root)
	if err := b.Focus(); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	b.SetCaret(offset)
	return b
}

func position(t *testing.T, b *Browser) caret.Position {
	t.Helper()
	pos, err := b.Position()
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	return pos
}

func TestBrowserDefaultActions(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		caret  int
		keys   []string
		want   string
		wantAt caret.Position
	}{
		{"type", "ac", 1, []string{"b"}, "abc", caret.Collapsed(2)},
		{"enter", "ab", 1, []string{"Enter"}, "a\nb", caret.Collapsed(2)},
		{"backspace", "abc", 2, []string{"Backspace"}, "ac", caret.Collapsed(1)},
		{"backspace at start", "abc", 0, []string{"Backspace"}, "abc", caret.Collapsed(0)},
		{"delete", "abc", 1, []string{"Delete"}, "ac", caret.Collapsed(1)},
		{"backspace grapheme", "e\u0301x", 2, []string{"Backspace"}, "x", caret.Collapsed(0)},
		{"delete flag", "a🇯🇵b", 1, []string{"Delete"}, "ab", caret.Collapsed(1)},
		{"left right", "abc", 1, []string{"ArrowRight", "ArrowRight", "ArrowLeft"}, "abc", caret.Collapsed(2)},
		{"shift extends", "abcd", 1, []string{"Shift+ArrowRight", "Shift+ArrowRight"}, "abcd", caret.NewPosition(1, 3)},
		{"shift extends backward", "abcd", 3, []string{"Shift+ArrowLeft", "Shift+ArrowLeft"}, "abcd", caret.NewPosition(3, 1)},
		{"home end", "ab\ncd", 4, []string{"Home"}, "ab\ncd", caret.Collapsed(3)},
		{"end", "ab\ncd\nef", 3, []string{"End"}, "ab\ncd\nef", caret.Collapsed(5)},
		{"up keeps column", "abcd\nxy\n1234", 11, []string{"ArrowUp"}, "abcd\nxy\n1234", caret.Collapsed(7)},
		{"down keeps column", "abcd\nxyz", 2, []string{"ArrowDown"}, "abcd\nxyz", caret.Collapsed(7)},
		{"up on first line", "abc", 2, []string{"ArrowUp"}, "abc", caret.Collapsed(0)},
		{"down on last line", "abc", 1, []string{"ArrowDown"}, "abc", caret.Collapsed(3)},
		{"select all and type", "abc", 1, []string{"Ctrl+A", "x"}, "x", caret.Collapsed(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBrowser(t, tt.text, tt.caret)
			for _, k := range tt.keys {
				if err := b.Press(k); err != nil {
					t.Fatalf("Press(%q): %v", k, err)
				}
			}
			if got := b.Text(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
			if got := position(t, b); got != tt.wantAt {
				t.Errorf("position = %+v, want %+v", got, tt.wantAt)
			}
		})
	}
}

func TestBrowserClipboard(t *testing.T) {
	b := newBrowser(t, "hello world", 0)
	b.Select(0, 5)

	if err := b.Press("Ctrl+C"); err != nil {
		t.Fatal(err)
	}
	if b.Clipboard() != "hello" {
		t.Errorf("clipboard = %q", b.Clipboard())
	}

	b.Select(5, 11)
	got, err := b.Cut()
	if err != nil {
		t.Fatal(err)
	}
	if got != " world" || b.Text() != "hello" {
		t.Errorf("Cut() = %q leaving %q", got, b.Text())
	}

	b.SetCaret(0)
	if err := b.Press("Ctrl+V"); err != nil {
		t.Fatal(err)
	}
	if b.Text() != " worldhello" {
		t.Errorf("text after paste = %q", b.Text())
	}
}

func TestBrowserPreventedDefaults(t *testing.T) {
	b := newBrowser(t, "abc", 1)
	doc := b.Document()
	doc.Listen(b.Root(), dom.EventKeyDown, func(ev *dom.Event) error {
		ev.PreventDefault()
		return nil
	})
	doc.Listen(b.Root(), dom.EventCut, func(ev *dom.Event) error {
		ev.PreventDefault()
		ev.Clipboard.SetData(dom.MIMEText, "custom")
		return nil
	})

	if err := b.Type("xyz"); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "abc" {
		t.Errorf("prevented keys changed text to %q", b.Text())
	}

	got, err := b.Cut()
	if err != nil {
		t.Fatal(err)
	}
	if got != "custom" || b.Text() != "abc" {
		t.Errorf("Cut() = %q leaving %q", got, b.Text())
	}
}

func TestBrowserTypeKeepsMarkup(t *testing.T) {
	doc := dom.NewDocument()
	root := dom.NewElement("div")
	if err := doc.SetInnerHTML(root, `<span class="k">let</span> x`); err != nil {
		t.Fatal(err)
	}
	b := NewBrowser(doc, root)
	_ = b.Focus()
	b.SetCaret(4)

	if err := b.Key(key.NewRuneEvent('y', key.ModNone)); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "let yx" {
		t.Fatalf("text = %q", b.Text())
	}
	if root.FirstChild.Type != html.ElementNode {
		t.Error("typing in place should keep existing spans")
	}
}

func TestBrowserCompose(t *testing.T) {
	b := newBrowser(t, "", 0)
	var composing []bool
	b.Document().Listen(b.Root(), dom.EventKeyUp, func(ev *dom.Event) error {
		composing = append(composing, ev.IsComposing)
		return nil
	})
	if err := b.Compose(key.NewRuneEvent('k', key.ModNone)); err != nil {
		t.Fatal(err)
	}
	if len(composing) != 1 || !composing[0] {
		t.Errorf("keyup composing flags = %v", composing)
	}
	if b.Text() != "" {
		t.Errorf("composition inserted %q", b.Text())
	}
}

func TestFocusPlacesCaret(t *testing.T) {
	doc := dom.NewDocument()
	root := dom.NewElement("div")
	b := NewBrowser(doc, root)
	if _, err := b.Position(); err == nil {
		t.Fatal("expected no selection before focus")
	}
	if err := b.Focus(); err != nil {
		t.Fatal(err)
	}
	if !doc.HasFocus(root) {
		t.Error("root should have focus")
	}
	if pos := position(t, b); pos != caret.Collapsed(0) {
		t.Errorf("position = %+v", pos)
	}
	_ = b.Blur()
	if doc.HasFocus(root) {
		t.Error("root should not have focus after Blur")
	}
}
