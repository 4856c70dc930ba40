package lua

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/keyjar/internal/dom"
	"github.com/dshills/keyjar/internal/highlight"
)

const digitsScript = `
function highlight(text)
  local spans = {}
  local i = 1
  while true do
    local s, e = string.find(text, "%d+", i)
    if not s then break end
    spans[#spans + 1] = {s, e, "m"}
    i = e + 1
  end
  return spans
end
`

func TestHighlighterTokenize(t *testing.T) {
	h, err := NewHighlighter(context.Background(), "digits", digitsScript)
	if err != nil {
		t.Fatalf("NewHighlighter: %v", err)
	}
	defer h.Close()

	got, err := h.Tokenize("é 12 x 3")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []highlight.Span{{Start: 2, End: 4, Class: "m"}, {Start: 7, End: 8, Class: "m"}}
	if len(got) != len(want) {
		t.Fatalf("spans = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestHighlighterRegion(t *testing.T) {
	h, err := NewHighlighter(context.Background(), "digits", digitsScript)
	if err != nil {
		t.Fatalf("NewHighlighter: %v", err)
	}
	defer h.Close()

	root := dom.NewElement("div")
	root.AppendChild(dom.NewText("a1b"))
	if err := highlight.New(h).Highlight(root, highlightPos); err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	got, err := dom.InnerHTML(root)
	if err != nil {
		t.Fatal(err)
	}
	if want := `a<span class="m">1</span>b`; got != want {
		t.Errorf("markup = %q, want %q", got, want)
	}
}

func TestHighlighterResults(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		want    []highlight.Span
		wantErr error
	}{
		{
			name:   "nil result",
			script: `function highlight(text) return nil end`,
		},
		{
			name:   "clamped",
			script: `function highlight(text) return {{0, 99, "s"}} end`,
			want:   []highlight.Span{{Start: 0, End: 3, Class: "s"}},
		},
		{
			name:   "reversed range dropped",
			script: `function highlight(text) return {{3, 1, "s"}} end`,
		},
		{
			name:    "not a table",
			script:  `function highlight(text) return 5 end`,
			wantErr: ErrInvalidResult,
		},
		{
			name:    "bad entry",
			script:  `function highlight(text) return {{1, "x", "s"}} end`,
			wantErr: ErrInvalidResult,
		},
		{
			name:    "runtime error",
			script:  `function highlight(text) error("boom") end`,
			wantErr: errAny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHighlighter(context.Background(), tt.name, tt.script)
			if err != nil {
				t.Fatalf("NewHighlighter: %v", err)
			}
			defer h.Close()

			got, err := h.Tokenize("abc")
			switch {
			case tt.wantErr == errAny:
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			case err != nil:
				t.Fatalf("Tokenize: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("spans = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("span %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewHighlighterErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := NewHighlighter(ctx, "nofn", `x = 1`); !errors.Is(err, ErrNoFunction) {
		t.Errorf("missing highlight: error = %v, want ErrNoFunction", err)
	}
	if _, err := NewHighlighter(ctx, "syntax", `function (`); err == nil {
		t.Error("syntax error should fail")
	}
}

func TestLoadHighlighter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digits.lua")
	if err := os.WriteFile(path, []byte(digitsScript), 0o644); err != nil {
		t.Fatal(err)
	}
	h, err := LoadHighlighter(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadHighlighter: %v", err)
	}
	defer h.Close()

	if got := h.Language(); got != "lua:"+path {
		t.Errorf("Language() = %q", got)
	}
	spans, err := h.Tokenize("x 7")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(spans) != 1 || spans[0] != (highlight.Span{Start: 2, End: 3, Class: "m"}) {
		t.Errorf("spans = %v", spans)
	}
}
