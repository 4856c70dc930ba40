package highlight

import (
	"regexp"
	"sort"
)

// Class names shared by the built-in tokenizers. They match the short CSS
// classes chroma's HTML formatter emits.
const (
	ClassComment          = "c1"
	ClassCommentMultiline = "cm"
	ClassKeyword          = "k"
	ClassKeywordConstant  = "kc"
	ClassKeywordDecl      = "kd"
	ClassKeywordNamespace = "kn"
	ClassKeywordType      = "kt"
	ClassBuiltin          = "nb"
	ClassDecorator        = "nd"
	ClassString           = "s"
	ClassStringBacktick   = "sb"
	ClassStringRegex      = "sr"
	ClassNumber           = "m"
	ClassNumberHex        = "mh"
	ClassNumberOct        = "mo"
	ClassNumberBin        = "mb"
)

// identPattern matches identifiers; matches are classified by keyword
// lookup.
var identPattern = regexp.MustCompile(`[\p{L}_][\p{L}\p{N}_]*`)

// Rule classifies the matches of a pattern.
type Rule struct {
	// Pattern is the expression to match.
	Pattern *regexp.Regexp

	// Class is assigned to matches.
	Class string
}

// Rules is a regular-expression tokenizer.
//
// Text is scanned left to right. At each position the earliest match of
// any rule wins; ties go to the rule added first. Identifiers not claimed
// by a rule are looked up in the keyword table.
type Rules struct {
	language string
	rules    []Rule
	keywords map[string]string
}

// NewRules creates an empty tokenizer for language.
func NewRules(language string) *Rules {
	return &Rules{
		language: language,
		keywords: make(map[string]string),
	}
}

// Language returns the language name.
func (r *Rules) Language() string {
	return r.language
}

// AddRule adds a rule. Patterns are compiled in multi-line mode, so ^ and $
// match at line boundaries. It panics if pattern does not compile.
func (r *Rules) AddRule(pattern, class string) *Rules {
	r.rules = append(r.rules, Rule{
		Pattern: regexp.MustCompile(`(?m)` + pattern),
		Class:   class,
	})
	return r
}

// AddBlock adds a construct that may span lines. An unterminated block
// runs to the end of the text.
func (r *Rules) AddBlock(start, end, class string) *Rules {
	pattern := `(?s)` + regexp.QuoteMeta(start) + `.*?(?:` + regexp.QuoteMeta(end) + `|\z)`
	r.rules = append(r.rules, Rule{
		Pattern: regexp.MustCompile(pattern),
		Class:   class,
	})
	return r
}

// AddKeywords classifies words.
func (r *Rules) AddKeywords(class string, words ...string) *Rules {
	for _, w := range words {
		r.keywords[w] = class
	}
	return r
}

type candidate struct {
	start, end int
	rule       int
}

// Tokenize implements Tokenizer.
func (r *Rules) Tokenize(text string) ([]Span, error) {
	var cands []candidate
	for i, rule := range r.rules {
		for _, m := range rule.Pattern.FindAllStringIndex(text, -1) {
			if m[1] > m[0] {
				cands = append(cands, candidate{m[0], m[1], i})
			}
		}
	}
	idents := len(r.rules)
	for _, m := range identPattern.FindAllStringIndex(text, -1) {
		cands = append(cands, candidate{m[0], m[1], idents})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		return cands[i].rule < cands[j].rule
	})

	offsets := RuneOffsets(text)
	var spans []Span
	pos := 0
	for _, c := range cands {
		if c.start < pos {
			continue
		}
		pos = c.end

		var class string
		if c.rule == idents {
			class = r.keywords[text[c.start:c.end]]
		} else {
			class = r.rules[c.rule].Class
		}
		if class == "" {
			continue
		}
		spans = append(spans, Span{
			Start: offsets[c.start],
			End:   offsets[c.end],
			Class: class,
		})
	}
	return spans, nil
}

// GoRules returns a tokenizer for Go.
func GoRules() *Rules {
	r := NewRules("go")

	r.AddBlock("/*", "*/", ClassCommentMultiline)
	r.AddBlock("`", "`", ClassStringBacktick)
	r.AddRule(`//.*$`, ClassComment)
	r.AddRule(`"(?:[^"\\\n]|\\.)*"`, ClassString)
	r.AddRule(`'(?:[^'\\\n]|\\.)'`, ClassString)
	r.AddRule(`\b0[xX][0-9a-fA-F_]+\b`, ClassNumberHex)
	r.AddRule(`\b0[oO][0-7_]+\b`, ClassNumberOct)
	r.AddRule(`\b0[bB][01_]+\b`, ClassNumberBin)
	r.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?\b`, ClassNumber)

	r.AddKeywords(ClassKeyword,
		"if", "else", "for", "range", "switch", "case", "default",
		"break", "continue", "return", "goto", "fallthrough", "select",
		"defer", "go")
	r.AddKeywords(ClassKeywordDecl,
		"func", "var", "const", "type", "struct", "interface", "map", "chan")
	r.AddKeywords(ClassKeywordNamespace, "package", "import")
	r.AddKeywords(ClassKeywordConstant, "true", "false", "nil", "iota")
	r.AddKeywords(ClassKeywordType,
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"float32", "float64", "complex64", "complex128",
		"bool", "byte", "rune", "string", "error", "any")
	r.AddKeywords(ClassBuiltin,
		"make", "new", "len", "cap", "append", "copy", "delete",
		"close", "panic", "recover", "print", "println",
		"real", "imag", "complex", "min", "max", "clear")
	return r
}

// JavaScriptRules returns a tokenizer for JavaScript.
func JavaScriptRules() *Rules {
	r := NewRules("javascript")

	r.AddBlock("/*", "*/", ClassCommentMultiline)
	r.AddBlock("`", "`", ClassStringBacktick)
	r.AddRule(`//.*$`, ClassComment)
	r.AddRule(`"(?:[^"\\\n]|\\.)*"`, ClassString)
	r.AddRule(`'(?:[^'\\\n]|\\.)*'`, ClassString)
	r.AddRule(`/(?:[^/\\\n*]|\\.)(?:[^/\\\n]|\\.)*/[dgimsuy]*`, ClassStringRegex)
	r.AddRule(`\b0[xX][0-9a-fA-F]+\b`, ClassNumberHex)
	r.AddRule(`\b0[oO][0-7]+\b`, ClassNumberOct)
	r.AddRule(`\b0[bB][01]+\b`, ClassNumberBin)
	r.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?\b`, ClassNumber)
	r.AddRule(`@\w+`, ClassDecorator)

	r.AddKeywords(ClassKeyword,
		"if", "else", "for", "while", "do", "switch", "case", "default",
		"break", "continue", "return", "throw", "try", "catch", "finally",
		"new", "delete", "typeof", "instanceof", "in", "of", "yield",
		"await", "async", "this", "super")
	r.AddKeywords(ClassKeywordDecl,
		"function", "var", "let", "const", "class", "extends", "static",
		"get", "set")
	r.AddKeywords(ClassKeywordNamespace, "import", "export", "from", "as")
	r.AddKeywords(ClassKeywordConstant,
		"true", "false", "null", "undefined", "NaN", "Infinity")
	return r
}

// PythonRules returns a tokenizer for Python.
func PythonRules() *Rules {
	r := NewRules("python")

	r.AddBlock(`"""`, `"""`, ClassString)
	r.AddBlock(`'''`, `'''`, ClassString)
	r.AddRule(`#.*$`, ClassComment)
	r.AddRule(`"(?:[^"\\\n]|\\.)*"`, ClassString)
	r.AddRule(`'(?:[^'\\\n]|\\.)*'`, ClassString)
	r.AddRule(`\b0[xX][0-9a-fA-F]+\b`, ClassNumberHex)
	r.AddRule(`\b0[oO][0-7]+\b`, ClassNumberOct)
	r.AddRule(`\b0[bB][01]+\b`, ClassNumberBin)
	r.AddRule(`\b\d+\.?\d*(?:[eE][+-]?\d+)?j?\b`, ClassNumber)
	r.AddRule(`@\w+`, ClassDecorator)

	r.AddKeywords(ClassKeyword,
		"if", "elif", "else", "for", "while", "break", "continue",
		"return", "try", "except", "finally", "raise", "with", "as",
		"match", "case", "pass", "yield", "assert", "del", "in", "is",
		"not", "and", "or", "global", "nonlocal", "await", "lambda")
	r.AddKeywords(ClassKeywordDecl, "def", "class", "async")
	r.AddKeywords(ClassKeywordNamespace, "import", "from")
	r.AddKeywords(ClassKeywordConstant, "True", "False", "None")
	r.AddKeywords(ClassBuiltin,
		"print", "len", "range", "enumerate", "zip", "map", "filter",
		"open", "input", "isinstance", "sorted", "reversed", "sum",
		"min", "max", "abs", "int", "float", "str", "bool", "list",
		"dict", "set", "tuple", "bytes", "type", "object", "super")
	return r
}
