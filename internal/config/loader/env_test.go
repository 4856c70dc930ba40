package loader

import (
	"testing"
	"time"
)

func newTestEnvLoader(env ...string) *EnvLoader {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader(t *testing.T) {
	l := newTestEnvLoader(
		"KEYJAR_LOG_LEVEL=debug",
		"KEYJAR_HISTORY_CAPACITY=25",
		"KEYJAR_EDITOR_CATCH_TAB=off",
		"KEYJAR_EDITOR_HIGHLIGHT_DELAY=50ms",
		"KEYJAR_TAB=",
		"KEYJAR_ALONE=x",
		"OTHER_EDITOR_TAB=x",
	)
	m, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"history.capacity", int64(25)},
		{"editor.catchTab", false},
		{"editor.highlightDelay", 50 * time.Millisecond},
		{"editor.tab", ""},
	}
	for _, tt := range tests {
		got, ok := Get(m, tt.path)
		if !ok || got != tt.want {
			t.Errorf("%s = %#v (set %v), want %#v", tt.path, got, ok, tt.want)
		}
	}
	if _, ok := m["alone"]; ok {
		t.Error("a variable without a setting part should be skipped")
	}
	if len(m) != 3 {
		t.Errorf("sections = %v, want editor, history and logging", m)
	}
}

func TestEnvLoaderMapping(t *testing.T) {
	l := newTestEnvLoader("KEYJAR_THEME=dark")
	l.AddMapping("KEYJAR_THEME", "term.theme")
	m, _ := l.Load()
	if v, _ := Get(m, "term.theme"); v != "dark" {
		t.Errorf("term.theme = %#v", v)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"yes", true},
		{"Off", false},
		{"12", int64(12)},
		{"1", int64(1)},
		{"1.5", 1.5},
		{"2s", 2 * time.Second},
		{"rules:go", "rules:go"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
