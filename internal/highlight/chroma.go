package highlight

import (
	"fmt"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Chroma tokenizes with a chroma lexer.
type Chroma struct {
	lexer chroma.Lexer
}

// NewChroma returns a tokenizer for the lexer registered under name or
// one of its aliases.
func NewChroma(name string) (*Chroma, error) {
	lexer := lexers.Get(name)
	if lexer == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	return &Chroma{lexer: chroma.Coalesce(lexer)}, nil
}

// NewChromaForFile returns a tokenizer for the lexer matching filename.
// Unknown files use chroma's plain-text fallback.
func NewChromaForFile(filename string) *Chroma {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Chroma{lexer: chroma.Coalesce(lexer)}
}

// Language returns the lexer's name.
func (c *Chroma) Language() string {
	return c.lexer.Config().Name
}

// Tokenize implements Tokenizer.
func (c *Chroma) Tokenize(text string) ([]Span, error) {
	it, err := c.lexer.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("highlight: %s: %w", c.Language(), err)
	}

	var spans []Span
	at := 0
	for _, tok := range it.Tokens() {
		n := utf8.RuneCountInString(tok.Value)
		if class := ClassOf(tok.Type); class != "" && n > 0 {
			spans = append(spans, Span{Start: at, End: at + n, Class: class})
		}
		at += n
	}
	// Lexers may append a final newline; Apply clamps to the text.
	return spans, nil
}

// ClassOf returns the CSS class chroma uses for t, falling back to its
// sub-category and category. Plain text and whitespace have no class.
func ClassOf(t chroma.TokenType) string {
	for _, tt := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if tt == chroma.Text || tt == chroma.TextWhitespace || tt == chroma.Background {
			return ""
		}
		if class, ok := chroma.StandardTypes[tt]; ok && class != "" {
			return class
		}
	}
	return ""
}
