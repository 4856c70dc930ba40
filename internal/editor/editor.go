package editor

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/dshills/keyjar/internal/caret"
	"github.com/dshills/keyjar/internal/dom"
	"github.com/dshills/keyjar/internal/history"
	"github.com/dshills/keyjar/internal/logging"
)

// baseStyle is applied to the region so that plain text wraps and keeps its
// whitespace.
const baseStyle = "outline: none; overflow-wrap: break-word; overflow-y: auto; white-space: pre-wrap;"

// Highlighter rewrites the markup of the region. It must keep the text
// content unchanged and must not move the selection; the editor restores
// the caret afterwards.
type Highlighter interface {
	Highlight(root *html.Node, pos caret.Position) error
}

// HighlightFunc adapts a function to Highlighter.
type HighlightFunc func(root *html.Node, pos caret.Position) error

// Highlight implements Highlighter.
func (f HighlightFunc) Highlight(root *html.Node, pos caret.Position) error {
	return f(root, pos)
}

// Config holds the collaborators of an Editor.
type Config struct {
	// Document owns the region, its selection and its listeners.
	Document *dom.Document

	// Root is the editable region.
	Root *html.Node

	// Highlighter is optional.
	Highlighter Highlighter

	// Scheduler runs debounced work on the editor's goroutine.
	Scheduler Scheduler

	// Logger defaults to logging.Default().
	Logger *logging.Logger

	// HistoryCapacity defaults to history.DefaultCapacity.
	HistoryCapacity int
}

// Editor is a code editor bound to one region.
type Editor struct {
	id    string
	doc   *dom.Document
	root  *html.Node
	codec *caret.Codec
	hl    Highlighter
	sched Scheduler
	log   *logging.Logger

	opts atomic.Pointer[Options]

	history *history.History
	latch   history.Latch

	// prev is the text at the last keydown.
	prev    string
	focused bool

	onUpdate func(string)

	stopHighlight func() bool
	stopHistory   func() bool

	removers  []func()
	destroyed bool
}

// New binds an editor to cfg.Root. It marks the region editable, starts
// listening for events and runs the highlighter once.
func New(cfg Config, opts ...Option) (*Editor, error) {
	if cfg.Document == nil {
		return nil, ErrNoDocument
	}
	if !dom.IsElement(cfg.Root) {
		return nil, ErrNoRoot
	}
	if cfg.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	id := uuid.NewString()
	e := &Editor{
		id:      id,
		doc:     cfg.Document,
		root:    cfg.Root,
		codec:   caret.NewCodec(cfg.Document, cfg.Root),
		hl:      cfg.Highlighter,
		sched:   cfg.Scheduler,
		log:     cfg.Logger.WithComponent("editor").WithField("editor", id),
		history: history.New(cfg.HistoryCapacity),
		focused: cfg.Document.HasFocus(cfg.Root),
	}
	o := DefaultOptions().apply(opts...)
	e.opts.Store(&o)

	e.setupRegion(&o)
	e.listen()
	e.highlight()

	e.log.Debug("attached (legacy=%t)", e.legacy())
	return e, nil
}

// setupRegion sets the attributes that make the root an editable region.
func (e *Editor) setupRegion(o *Options) {
	mode := "plaintext-only"
	if e.legacy() {
		mode = "true"
	}
	dom.SetAttr(e.root, "contenteditable", mode)
	dom.SetAttr(e.root, "spellcheck", fmt.Sprint(o.Spellcheck))

	style, _ := dom.Attr(e.root, "style")
	style = strings.TrimSpace(style)
	if !strings.Contains(style, baseStyle) {
		if style != "" && !strings.HasSuffix(style, ";") {
			style += ";"
		}
		style = strings.TrimSpace(style + " " + baseStyle)
	}
	dom.SetAttr(e.root, "style", style)
}

// legacy reports whether the document lacks plaintext-only regions.
func (e *Editor) legacy() bool {
	return !e.doc.PlaintextOnly()
}

// ID returns the unique identifier of the editor.
func (e *Editor) ID() string {
	return e.id
}

// Root returns the editable region.
func (e *Editor) Root() *html.Node {
	return e.root
}

// Options returns the current options.
func (e *Editor) Options() Options {
	return *e.opts.Load()
}

// UpdateOptions replaces the options with the current ones modified by
// opts. Handlers already running keep the options they started with.
func (e *Editor) UpdateOptions(opts ...Option) {
	o := e.opts.Load().apply(opts...)
	e.opts.Store(&o)
	dom.SetAttr(e.root, "spellcheck", fmt.Sprint(o.Spellcheck))
}

// String returns the text of the region.
func (e *Editor) String() string {
	return dom.TextContent(e.root)
}

// OnUpdate sets the function called with the new text after every change.
// Only the last function set is called.
func (e *Editor) OnUpdate(fn func(text string)) {
	e.onUpdate = fn
}

// UpdateCode replaces the text of the region, re-highlights it and takes a
// history snapshot. When notify is set the update callback is called.
func (e *Editor) UpdateCode(text string, notify bool) {
	if e.destroyed {
		return
	}
	e.doc.SetTextContent(e.root, text)
	e.highlight()
	if notify {
		e.notify()
	}
	e.record(true)
}

// Save returns the caret position. Without a selection in the region it
// falls back to the position of the current history record.
func (e *Editor) Save() caret.Position {
	pos, err := e.codec.Save()
	if err == nil {
		return pos
	}
	if rec, ok := e.history.Current(); ok {
		return rec.Position
	}
	return caret.Position{}
}

// Restore places the caret at pos.
func (e *Editor) Restore(pos caret.Position) {
	e.codec.Restore(pos)
}

// RecordHistory takes a history snapshot if the region has focus.
func (e *Editor) RecordHistory() {
	e.record(false)
}

// History returns the undo/redo log.
func (e *Editor) History() *history.History {
	return e.history
}

// Undo restores the previous history record.
func (e *Editor) Undo() error {
	rec, err := e.history.Undo()
	if err != nil {
		return err
	}
	return e.apply(rec)
}

// Redo restores the next history record.
func (e *Editor) Redo() error {
	rec, err := e.history.Redo()
	if err != nil {
		return err
	}
	return e.apply(rec)
}

// apply puts the region back into the state captured by rec.
func (e *Editor) apply(rec history.Record) error {
	if err := e.doc.SetInnerHTML(e.root, rec.Content); err != nil {
		return err
	}
	e.codec.Restore(rec.Position)
	return nil
}

// Destroy detaches the editor from the region. Pending work is cancelled
// and no callbacks run afterwards. Calling Destroy again does nothing.
func (e *Editor) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	for _, remove := range e.removers {
		remove()
	}
	e.removers = nil
	if e.stopHighlight != nil {
		e.stopHighlight()
	}
	if e.stopHistory != nil {
		e.stopHistory()
	}
	e.log.Debug("destroyed")
}

// record pushes a snapshot of the region. Unless forced it only does so
// while the region has focus.
func (e *Editor) record(force bool) {
	if !force && !e.focused {
		return
	}
	markup, err := dom.InnerHTML(e.root)
	if err != nil {
		e.log.Warn("serialize region: %v", err)
		return
	}
	e.history.Push(history.Record{Content: markup, Position: e.Save()})
}

// highlight runs the highlighter with the caret saved around it. Without a
// selection in the region the caret is left alone.
func (e *Editor) highlight() {
	pos, err := e.codec.Save()
	e.runHighlighter(pos)
	if err == nil {
		e.codec.Restore(pos)
	}
}

// runHighlighter calls the highlighter, turning a panic into a logged error.
func (e *Editor) runHighlighter(pos caret.Position) {
	if e.hl == nil {
		return
	}
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrHighlighterPanic, r)
			}
		}()
		return e.hl.Highlight(e.root, pos)
	}()
	if err != nil {
		e.log.Error("highlight: %v", err)
	}
}

// notify calls the update callback with the current text.
func (e *Editor) notify() {
	if e.onUpdate != nil && !e.destroyed {
		e.onUpdate(e.String())
	}
}

// debounce replaces the pending call tracked by stop with f after d.
func (e *Editor) debounce(stop *func() bool, d time.Duration, f func()) {
	if *stop != nil {
		(*stop)()
	}
	*stop = e.sched.AfterFunc(d, func() {
		if e.destroyed {
			return
		}
		f()
	})
}
