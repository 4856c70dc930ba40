package editor

import (
	"regexp"
	"time"

	"github.com/dshills/keyjar/internal/input/key"
)

// Options controls editing behavior. A value is never modified after it is
// installed; UpdateOptions builds a new one.
type Options struct {
	// Tab is inserted by the Tab key and removed by Shift+Tab.
	Tab string

	// IndentOn matches the text before the caret when Enter should indent
	// the new line one Tab deeper.
	IndentOn *regexp.Regexp

	// MoveToNewLine matches the text after the caret when an indented
	// Enter should also push that text to its own line.
	MoveToNewLine *regexp.Regexp

	// Spellcheck sets the spellcheck attribute of the region.
	Spellcheck bool

	// CatchTab makes Tab and Shift+Tab edit indentation instead of moving
	// focus.
	CatchTab bool

	// PreserveIndent copies the current line's indentation on Enter.
	PreserveIndent bool

	// AddClosing auto-closes brackets and quotes.
	AddClosing bool

	// History enables undo/redo key handling and keystroke recording.
	History bool

	// Undo and Redo are the undo/redo shortcuts.
	Undo key.Binding
	Redo key.Binding

	// HighlightDelay is how long input must settle before re-highlighting.
	HighlightDelay time.Duration

	// HistoryDelay is how long input must settle before a burst of typing
	// is closed with a history snapshot.
	HistoryDelay time.Duration
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Tab:            "\t",
		IndentOn:       regexp.MustCompile(`[({\[]$`),
		MoveToNewLine:  regexp.MustCompile(`^[)}\]]`),
		Spellcheck:     false,
		CatchTab:       true,
		PreserveIndent: true,
		AddClosing:     true,
		History:        true,
		Undo:           key.MustParseBinding("Mod+Z"),
		Redo:           key.MustParseBinding("Mod+Shift+Z"),
		HighlightDelay: 30 * time.Millisecond,
		HistoryDelay:   300 * time.Millisecond,
	}
}

// Option modifies Options.
type Option func(*Options)

// WithTab sets the indentation unit.
func WithTab(tab string) Option {
	return func(o *Options) { o.Tab = tab }
}

// WithIndentOn sets the pattern that triggers extra indentation.
func WithIndentOn(re *regexp.Regexp) Option {
	return func(o *Options) { o.IndentOn = re }
}

// WithMoveToNewLine sets the pattern that moves trailing text to its own
// line after an indented Enter.
func WithMoveToNewLine(re *regexp.Regexp) Option {
	return func(o *Options) { o.MoveToNewLine = re }
}

// WithSpellcheck toggles spellchecking.
func WithSpellcheck(on bool) Option {
	return func(o *Options) { o.Spellcheck = on }
}

// WithCatchTab toggles Tab handling.
func WithCatchTab(on bool) Option {
	return func(o *Options) { o.CatchTab = on }
}

// WithPreserveIndent toggles indentation on Enter.
func WithPreserveIndent(on bool) Option {
	return func(o *Options) { o.PreserveIndent = on }
}

// WithAddClosing toggles bracket and quote auto-closing.
func WithAddClosing(on bool) Option {
	return func(o *Options) { o.AddClosing = on }
}

// WithHistory toggles undo/redo.
func WithHistory(on bool) Option {
	return func(o *Options) { o.History = on }
}

// WithUndoKey sets the undo shortcut.
func WithUndoKey(b key.Binding) Option {
	return func(o *Options) { o.Undo = b }
}

// WithRedoKey sets the redo shortcut.
func WithRedoKey(b key.Binding) Option {
	return func(o *Options) { o.Redo = b }
}

// WithHighlightDelay sets the re-highlight debounce.
func WithHighlightDelay(d time.Duration) Option {
	return func(o *Options) { o.HighlightDelay = d }
}

// WithHistoryDelay sets the history settle debounce.
func WithHistoryDelay(d time.Duration) Option {
	return func(o *Options) { o.HistoryDelay = d }
}

// apply returns a copy of o with opts applied.
func (o Options) apply(opts ...Option) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
