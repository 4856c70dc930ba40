package highlight

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/keyjar/internal/caret"
	"github.com/dshills/keyjar/internal/dom"
)

// Tokenizer splits text into classified spans. Span offsets count
// characters.
type Tokenizer interface {
	Tokenize(text string) ([]Span, error)
}

// TokenizerFunc adapts a function to Tokenizer.
type TokenizerFunc func(text string) ([]Span, error)

// Tokenize implements Tokenizer.
func (f TokenizerFunc) Tokenize(text string) ([]Span, error) {
	return f(text)
}

// Plain produces no spans. Highlighting with it flattens the region to a
// single text node.
var Plain Tokenizer = TokenizerFunc(func(string) ([]Span, error) {
	return nil, nil
})

// Highlighter rebuilds a region from the spans of a Tokenizer.
type Highlighter struct {
	tok Tokenizer
}

// New creates a highlighter. A nil tokenizer behaves like Plain.
func New(tok Tokenizer) *Highlighter {
	if tok == nil {
		tok = Plain
	}
	return &Highlighter{tok: tok}
}

// Tokenizer returns the underlying tokenizer.
func (h *Highlighter) Tokenizer() Tokenizer {
	return h.tok
}

// Highlight rewrites the markup of root. The caret position is not used;
// the whole region is re-tokenized. On error root is left untouched.
func (h *Highlighter) Highlight(root *html.Node, _ caret.Position) error {
	text := dom.TextContent(root)
	spans, err := h.tok.Tokenize(text)
	if err != nil {
		return err
	}
	Apply(root, text, spans)
	return nil
}

// ByName builds a highlighter from a selector:
//
//	none             no classes
//	rules:<lang>     Rules preset for go, javascript (js) or python (py)
//	chroma:<lexer>   chroma lexer by name or alias
//
// The empty string is the same as "none".
func ByName(name string) (*Highlighter, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "none") {
		return New(Plain), nil
	}
	kind, lang, ok := strings.Cut(name, ":")
	if !ok || lang == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	switch strings.ToLower(kind) {
	case "rules":
		r, err := RulesFor(lang)
		if err != nil {
			return nil, err
		}
		return New(r), nil
	case "chroma":
		c, err := NewChroma(lang)
		if err != nil {
			return nil, err
		}
		return New(c), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
}

// RulesFor returns the Rules preset for lang.
func RulesFor(lang string) (*Rules, error) {
	switch strings.ToLower(lang) {
	case "go", "golang":
		return GoRules(), nil
	case "javascript", "js":
		return JavaScriptRules(), nil
	case "python", "py":
		return PythonRules(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
}
