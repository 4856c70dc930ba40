package config

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/keyjar/internal/config/loader"
	"github.com/dshills/keyjar/internal/editor"
	"github.com/dshills/keyjar/internal/history"
	"github.com/dshills/keyjar/internal/input/key"
	"github.com/dshills/keyjar/internal/logging"
)

// Settings is the decoded configuration.
type Settings struct {
	Editor    EditorSettings
	History   HistorySettings
	Highlight HighlightSettings
	Logging   LoggingSettings
}

// EditorSettings mirrors editor.Options in configuration form.
type EditorSettings struct {
	Tab            string
	IndentOn       string
	MoveToNewLine  string
	Spellcheck     bool
	CatchTab       bool
	PreserveIndent bool
	AddClosing     bool
	Undo           string
	Redo           string
	HighlightDelay time.Duration
	HistoryDelay   time.Duration
}

// HistorySettings configures undo history.
type HistorySettings struct {
	Enabled  bool
	Capacity int
}

// HighlightSettings picks a highlighter. Script, when set, names a Lua
// highlighter and takes precedence over Name.
type HighlightSettings struct {
	Name   string
	Script string
}

// LoggingSettings configures the log.
type LoggingSettings struct {
	Level string
	File  string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	o := editor.DefaultOptions()
	return Settings{
		Editor: EditorSettings{
			Tab:            o.Tab,
			IndentOn:       o.IndentOn.String(),
			MoveToNewLine:  o.MoveToNewLine.String(),
			Spellcheck:     o.Spellcheck,
			CatchTab:       o.CatchTab,
			PreserveIndent: o.PreserveIndent,
			AddClosing:     o.AddClosing,
			Undo:           o.Undo.String(),
			Redo:           o.Redo.String(),
			HighlightDelay: o.HighlightDelay,
			HistoryDelay:   o.HistoryDelay,
		},
		History: HistorySettings{
			Enabled:  o.History,
			Capacity: history.DefaultCapacity,
		},
		Highlight: HighlightSettings{
			Name: "none",
		},
		Logging: LoggingSettings{
			Level: logging.LevelInfo.String(),
		},
	}
}

// FromMap decodes a merged configuration map on top of Defaults. Unknown
// keys are ignored.
func FromMap(m map[string]any) (Settings, error) {
	s := Defaults()
	d := decoder{m: m}

	d.str("editor.tab", &s.Editor.Tab)
	d.str("editor.indentOn", &s.Editor.IndentOn)
	d.str("editor.moveToNewLine", &s.Editor.MoveToNewLine)
	d.boolean("editor.spellcheck", &s.Editor.Spellcheck)
	d.boolean("editor.catchTab", &s.Editor.CatchTab)
	d.boolean("editor.preserveIndent", &s.Editor.PreserveIndent)
	d.boolean("editor.addClosing", &s.Editor.AddClosing)
	d.str("editor.undo", &s.Editor.Undo)
	d.str("editor.redo", &s.Editor.Redo)
	d.duration("editor.highlightDelay", &s.Editor.HighlightDelay)
	d.duration("editor.historyDelay", &s.Editor.HistoryDelay)

	d.boolean("history.enabled", &s.History.Enabled)
	d.integer("history.capacity", &s.History.Capacity)

	d.str("highlight.name", &s.Highlight.Name)
	d.str("highlight.script", &s.Highlight.Script)

	d.str("logging.level", &s.Logging.Level)
	d.str("logging.file", &s.Logging.File)

	if d.err != nil {
		return Settings{}, d.err
	}
	s.Editor.Tab = unescape(s.Editor.Tab)
	return s, s.Validate()
}

// Validate checks values that decode but cannot be used.
func (s Settings) Validate() error {
	if s.History.Capacity < 1 {
		return &SettingError{"history.capacity", fmt.Errorf("%w: must be positive, got %d", ErrInvalidValue, s.History.Capacity)}
	}
	for path, d := range map[string]time.Duration{
		"editor.highlightDelay": s.Editor.HighlightDelay,
		"editor.historyDelay":   s.Editor.HistoryDelay,
	} {
		if d < 0 {
			return &SettingError{path, fmt.Errorf("%w: negative duration %s", ErrInvalidValue, d)}
		}
	}
	_, err := s.EditorOptions()
	return err
}

// EditorOptions converts the editor and history sections to editor
// options. An empty pattern disables the corresponding behavior.
func (s Settings) EditorOptions() ([]editor.Option, error) {
	indentOn, err := compile("editor.indentOn", s.Editor.IndentOn)
	if err != nil {
		return nil, err
	}
	moveToNewLine, err := compile("editor.moveToNewLine", s.Editor.MoveToNewLine)
	if err != nil {
		return nil, err
	}
	undo, err := binding("editor.undo", s.Editor.Undo)
	if err != nil {
		return nil, err
	}
	redo, err := binding("editor.redo", s.Editor.Redo)
	if err != nil {
		return nil, err
	}

	return []editor.Option{
		editor.WithTab(s.Editor.Tab),
		editor.WithIndentOn(indentOn),
		editor.WithMoveToNewLine(moveToNewLine),
		editor.WithSpellcheck(s.Editor.Spellcheck),
		editor.WithCatchTab(s.Editor.CatchTab),
		editor.WithPreserveIndent(s.Editor.PreserveIndent),
		editor.WithAddClosing(s.Editor.AddClosing),
		editor.WithHistory(s.History.Enabled),
		editor.WithUndoKey(undo),
		editor.WithRedoKey(redo),
		editor.WithHighlightDelay(s.Editor.HighlightDelay),
		editor.WithHistoryDelay(s.Editor.HistoryDelay),
	}, nil
}

// LogLevel returns the parsed log level.
func (s Settings) LogLevel() logging.Level {
	return logging.ParseLevel(s.Logging.Level)
}

func compile(path, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &SettingError{path, fmt.Errorf("%w: %v", ErrInvalidValue, err)}
	}
	return re, nil
}

func binding(path, spec string) (key.Binding, error) {
	b, err := key.ParseBinding(spec)
	if err != nil {
		return key.Binding{}, &SettingError{path, fmt.Errorf("%w: %v", ErrInvalidValue, err)}
	}
	return b, nil
}

// unescape interprets backslash escapes such as \t, so single-quoted TOML
// and YAML strings can spell a tab.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	u, err := strconv.Unquote(`"` + strings.ReplaceAll(s, `"`, `\"`) + `"`)
	if err != nil {
		return s
	}
	return u
}

// decoder reads typed values from a nested map and keeps the first error.
type decoder struct {
	m   map[string]any
	err error
}

func (d *decoder) lookup(path string) (any, bool) {
	if d.err != nil {
		return nil, false
	}
	return loader.Get(d.m, path)
}

func (d *decoder) mismatch(path, want string, v any) {
	d.err = &SettingError{path, fmt.Errorf("%w: want %s, got %T", ErrTypeMismatch, want, v)}
}

func (d *decoder) str(path string, dst *string) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		d.mismatch(path, "string", v)
		return
	}
	*dst = s
}

func (d *decoder) boolean(path string, dst *bool) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	b, ok := v.(bool)
	if !ok {
		d.mismatch(path, "bool", v)
		return
	}
	*dst = b
}

func (d *decoder) integer(path string, dst *int) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	n, ok := toInt(v)
	if !ok {
		d.mismatch(path, "integer", v)
		return
	}
	*dst = n
}

// duration accepts a duration string ("30ms"), a time.Duration, or a
// number of milliseconds.
func (d *decoder) duration(path string, dst *time.Duration) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	switch v := v.(type) {
	case time.Duration:
		*dst = v
	case string:
		dur, err := time.ParseDuration(v)
		if err != nil {
			d.err = &SettingError{path, fmt.Errorf("%w: %v", ErrInvalidValue, err)}
			return
		}
		*dst = dur
	default:
		ms, ok := toInt(v)
		if !ok {
			d.mismatch(path, "duration", v)
			return
		}
		*dst = time.Duration(ms) * time.Millisecond
	}
}

// toInt converts the integer types the loaders produce. Floats must be
// whole numbers.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
