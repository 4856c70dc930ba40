package highlight

import (
	"testing"

	"github.com/alecthomas/chroma/v2"

	"github.com/dshills/keyjar/internal/dom"
)

func TestChromaTokenize(t *testing.T) {
	c, err := NewChroma("go")
	if err != nil {
		t.Fatalf("NewChroma: %v", err)
	}

	text := "package main\n\nfunc main() {}"
	spans, err := c.Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(spans) == 0 {
		t.Fatal("no spans")
	}
	if got, want := spans[0], (Span{0, 7, "kn"}); got != want {
		t.Errorf("first span = %v, want %v", got, want)
	}

	root := dom.NewElement("div")
	Apply(root, text, spans)
	if got := dom.TextContent(root); got != text {
		t.Errorf("text after Apply = %q, want %q", got, text)
	}
}

func TestChromaForFile(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"main.py", "Python"},
		{"main.go", "Go"},
		{"notes.unknown-extension", "plaintext"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			if got := NewChromaForFile(tt.file).Language(); got != tt.want {
				t.Errorf("Language() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		tt   chroma.TokenType
		want string
	}{
		{chroma.Keyword, "k"},
		{chroma.KeywordDeclaration, "kd"},
		{chroma.LiteralStringDouble, "s2"},
		{chroma.Keyword + 50, "k"},
		{chroma.Text, ""},
		{chroma.TextWhitespace, ""},
	}
	for _, tt := range tests {
		t.Run(tt.tt.String(), func(t *testing.T) {
			if got := ClassOf(tt.tt); got != tt.want {
				t.Errorf("ClassOf(%v) = %q, want %q", tt.tt, got, tt.want)
			}
		})
	}
}
