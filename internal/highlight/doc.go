// Package highlight provides highlighters for editable regions.
//
// A highlighter reads the text of a region, splits it into classified
// spans and rebuilds the region's markup from them:
//
//	hl := highlight.New(highlight.GoRules())
//	ed, err := editor.New(editor.Config{Highlighter: hl, ...})
//
// Two tokenizers are built in. Rules is a small regular-expression
// tokenizer with Go, JavaScript and Python presets. Chroma wraps a chroma
// lexer. Both emit chroma's short CSS class names ("k", "s", "c1", ...) so
// a single stylesheet or terminal theme covers either.
package highlight
