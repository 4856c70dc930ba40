package config

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/dshills/keyjar/internal/config/loader"
	"github.com/dshills/keyjar/internal/editor"
	"github.com/dshills/keyjar/internal/input/key"
	"github.com/dshills/keyjar/internal/logging"
)

func TestDefaultsMatchEditor(t *testing.T) {
	opts, err := Defaults().EditorOptions()
	if err != nil {
		t.Fatalf("EditorOptions: %v", err)
	}

	var got editor.Options
	for _, opt := range opts {
		opt(&got)
	}
	want := editor.DefaultOptions()

	if got.Tab != want.Tab {
		t.Errorf("Tab = %q, want %q", got.Tab, want.Tab)
	}
	if got.IndentOn.String() != want.IndentOn.String() {
		t.Errorf("IndentOn = %q, want %q", got.IndentOn, want.IndentOn)
	}
	if got.MoveToNewLine.String() != want.MoveToNewLine.String() {
		t.Errorf("MoveToNewLine = %q, want %q", got.MoveToNewLine, want.MoveToNewLine)
	}
	if got.CatchTab != want.CatchTab || got.PreserveIndent != want.PreserveIndent ||
		got.AddClosing != want.AddClosing || got.History != want.History ||
		got.Spellcheck != want.Spellcheck {
		t.Errorf("flags = %+v, want %+v", got, want)
	}
	if got.Undo != want.Undo || got.Redo != want.Redo {
		t.Errorf("undo/redo = %v/%v, want %v/%v", got.Undo, got.Redo, want.Undo, want.Redo)
	}
	if got.HighlightDelay != want.HighlightDelay || got.HistoryDelay != want.HistoryDelay {
		t.Errorf("delays = %v/%v", got.HighlightDelay, got.HistoryDelay)
	}
}

func TestFromMap(t *testing.T) {
	m := map[string]any{
		"editor": map[string]any{
			"tab":            `\t`,
			"indentOn":       `:$`,
			"moveToNewLine":  "",
			"catchTab":       false,
			"undo":           "Ctrl+U",
			"highlightDelay": "50ms",
			"historyDelay":   int64(200),
		},
		"history": map[string]any{
			"enabled":  false,
			"capacity": float64(10),
		},
		"highlight": map[string]any{"name": "rules:python"},
		"logging":   map[string]any{"level": "debug"},
		"unknown":   map[string]any{"x": 1},
	}

	s, err := FromMap(m)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}

	if s.Editor.Tab != "\t" {
		t.Errorf("Tab = %q, want a tab", s.Editor.Tab)
	}
	if s.Editor.CatchTab {
		t.Error("CatchTab should be false")
	}
	if !s.Editor.PreserveIndent {
		t.Error("PreserveIndent should keep its default")
	}
	if s.Editor.HighlightDelay != 50*time.Millisecond {
		t.Errorf("HighlightDelay = %v", s.Editor.HighlightDelay)
	}
	if s.Editor.HistoryDelay != 200*time.Millisecond {
		t.Errorf("HistoryDelay = %v", s.Editor.HistoryDelay)
	}
	if s.History.Enabled || s.History.Capacity != 10 {
		t.Errorf("History = %+v", s.History)
	}
	if s.Highlight.Name != "rules:python" {
		t.Errorf("Highlight.Name = %q", s.Highlight.Name)
	}
	if s.LogLevel() != logging.LevelDebug {
		t.Errorf("LogLevel() = %v", s.LogLevel())
	}

	opts, err := s.EditorOptions()
	if err != nil {
		t.Fatalf("EditorOptions: %v", err)
	}
	var o editor.Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.IndentOn == nil || !o.IndentOn.MatchString("def f():") {
		t.Errorf("IndentOn = %v, want a pattern matching a trailing colon", o.IndentOn)
	}
	if o.MoveToNewLine != nil {
		t.Errorf("MoveToNewLine = %v, want nil for an empty pattern", o.MoveToNewLine)
	}
	if !o.Undo.Matches(key.NewRuneEvent('u', key.ModCtrl)) {
		t.Errorf("Undo = %v, want Ctrl+U", o.Undo)
	}
	if o.History {
		t.Error("History option should be off")
	}
}

func TestFromMapErrors(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
		path string
		want error
	}{
		{"string type", map[string]any{"editor": map[string]any{"tab": 4}}, "editor.tab", ErrTypeMismatch},
		{"bool type", map[string]any{"editor": map[string]any{"catchTab": "yes"}}, "editor.catchTab", ErrTypeMismatch},
		{"int type", map[string]any{"history": map[string]any{"capacity": "many"}}, "history.capacity", ErrTypeMismatch},
		{"fractional int", map[string]any{"history": map[string]any{"capacity": 1.5}}, "history.capacity", ErrTypeMismatch},
		{"capacity", map[string]any{"history": map[string]any{"capacity": 0}}, "history.capacity", ErrInvalidValue},
		{"duration", map[string]any{"editor": map[string]any{"historyDelay": "soon"}}, "editor.historyDelay", ErrInvalidValue},
		{"negative duration", map[string]any{"editor": map[string]any{"historyDelay": "-1s"}}, "editor.historyDelay", ErrInvalidValue},
		{"regexp", map[string]any{"editor": map[string]any{"indentOn": "("}}, "editor.indentOn", ErrInvalidValue},
		{"binding", map[string]any{"editor": map[string]any{"redo": "Ctrl+"}}, "editor.redo", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMap(tt.m)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var se *SettingError
			if !errors.As(err, &se) || se.Path != tt.path {
				t.Errorf("error = %v, want a SettingError for %s", err, tt.path)
			}
		})
	}
}

func TestLoadLayers(t *testing.T) {
	fsys := loader.FromFS(fstest.MapFS{
		"keyjar.toml": {Data: []byte(`
[editor]
tab = "  "
addClosing = false

[highlight]
name = "rules:go"
`)},
	})
	t.Setenv("KEYJAR_HIGHLIGHTER", "chroma:go")
	t.Setenv("KEYJAR_EDITOR_SPELLCHECK", "on")

	s, err := Load(WithFile("keyjar.toml"), WithFS(fsys))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Editor.Tab != "  " {
		t.Errorf("Tab = %q", s.Editor.Tab)
	}
	if s.Editor.AddClosing {
		t.Error("AddClosing should come from the file")
	}
	if s.Highlight.Name != "chroma:go" {
		t.Errorf("Highlight.Name = %q, want the environment to win", s.Highlight.Name)
	}
	if !s.Editor.Spellcheck {
		t.Error("Spellcheck should come from the environment")
	}

	s, err = Load(WithFile("keyjar.toml"), WithFS(fsys), WithEnv(false))
	if err != nil {
		t.Fatalf("Load without env: %v", err)
	}
	if s.Highlight.Name != "rules:go" {
		t.Errorf("Highlight.Name = %q without env", s.Highlight.Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(WithFile("absent.yaml"), WithFS(loader.FromFS(fstest.MapFS{})), WithEnv(false))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Defaults() {
		t.Errorf("settings = %+v, want defaults", s)
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct{ in, want string }{
		{`\t`, "\t"},
		{"  ", "  "},
		{`a"b`, `a"b`},
		{`\q`, `\q`},
	}
	for _, tt := range tests {
		if got := unescape(tt.in); got != tt.want {
			t.Errorf("unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
