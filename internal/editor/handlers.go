package editor

import (
	"errors"
	"strings"

	"github.com/dshills/keyjar/internal/caret"
	"github.com/dshills/keyjar/internal/dom"
	"github.com/dshills/keyjar/internal/history"
	"github.com/dshills/keyjar/internal/input/key"
)

const (
	openChars  = `([{'"`
	closeChars = `)]}'"`
)

// keyHandler handles one intent of a keydown. It returns nil when the
// event is not its business.
type keyHandler func(ev *dom.Event, o *Options) error

// onKeyDown runs the keydown pipeline. The options are read once so that
// every stage of one event sees the same configuration.
func (e *Editor) onKeyDown(ev *dom.Event) error {
	if ev.DefaultPrevented() {
		return nil
	}
	o := e.opts.Load()
	e.prev = e.String()

	pipeline := []struct {
		enabled bool
		handle  keyHandler
	}{
		{true, e.handleNewLine},
		{o.CatchTab, e.handleTab},
		{o.AddClosing, e.handleSelfClosing},
		{o.History, e.handleUndoRedo},
	}
	for _, stage := range pipeline {
		if !stage.enabled || ev.DefaultPrevented() {
			continue
		}
		if err := stage.handle(ev, o); err != nil {
			return err
		}
	}

	if o.History && e.latch.KeyDown(shouldRecord(ev.Key, o)) {
		e.record(false)
	}

	// Legacy regions can leave the selection on elements the browser
	// created; saving and restoring moves it back onto text.
	if e.legacy() && !isCopy(ev.Key) {
		if pos, err := e.codec.Save(); err == nil {
			e.codec.Restore(pos)
		}
	}
	return nil
}

// onKeyUp schedules the re-highlight and the history settle, then reports
// the new text.
func (e *Editor) onKeyUp(ev *dom.Event) error {
	if ev.DefaultPrevented() || ev.IsComposing {
		return nil
	}
	o := e.opts.Load()

	if e.prev != e.String() {
		e.debounce(&e.stopHighlight, o.HighlightDelay, e.highlight)
	}
	recordable := shouldRecord(ev.Key, o)
	e.debounce(&e.stopHistory, o.HistoryDelay, func() {
		if e.latch.Settle(recordable) {
			e.record(false)
		}
	})
	e.notify()
	return nil
}

// handleNewLine replaces Enter with a newline that keeps the indentation
// of the current line, indenting once more after an opening bracket.
func (e *Editor) handleNewLine(ev *dom.Event, o *Options) error {
	if ev.Key.Key != key.KeyEnter {
		return nil
	}
	ev.PreventDefault()
	ev.StopPropagation()

	if !o.PreserveIndent {
		return e.insert("\n")
	}

	pos, err := e.codec.Save()
	if err != nil {
		return err
	}
	before, after := e.beforeCaret(pos), e.afterCaret(pos)
	padding, _, _ := FindPadding(before)
	newPadding := padding
	if o.IndentOn != nil && o.IndentOn.MatchString(before) {
		newPadding += o.Tab
	}
	if err := e.insert("\n" + newPadding); err != nil {
		return err
	}

	// Put a closing bracket that followed the caret on its own line.
	if newPadding != padding && o.MoveToNewLine != nil && o.MoveToNewLine.MatchString(after) {
		pos, err := e.codec.Save()
		if err != nil {
			return err
		}
		if err := e.insert("\n" + padding); err != nil {
			return err
		}
		e.codec.Restore(pos)
	}
	return nil
}

// handleTab inserts the tab unit, or removes one from the start of the
// line on Shift+Tab.
func (e *Editor) handleTab(ev *dom.Event, o *Options) error {
	k := ev.Key
	if k.Key != key.KeyTab || k.Modifiers.Has(key.ModCtrl|key.ModAlt|key.ModMeta) {
		return nil
	}
	ev.PreventDefault()

	if !k.Modifiers.HasShift() {
		return e.insert(o.Tab)
	}

	pos, err := e.codec.Save()
	if err != nil {
		return err
	}
	padding, lineStart, _ := FindPadding(e.beforeCaret(pos))
	n := min(runeLen(o.Tab), runeLen(padding))
	if n == 0 {
		return nil
	}

	e.codec.Restore(caret.Position{Start: lineStart, End: lineStart + n, Dir: caret.DirForward})
	if err := e.insert(""); err != nil {
		return err
	}
	e.codec.Restore(caret.Position{
		Start: max(pos.Start-n, lineStart),
		End:   max(pos.End-n, lineStart),
		Dir:   pos.Dir,
	})
	return nil
}

// handleSelfClosing auto-closes brackets and quotes, wraps a selection in
// them, and steps over a closer that is already next to the caret.
func (e *Editor) handleSelfClosing(ev *dom.Event, o *Options) error {
	k := ev.Key
	if !k.IsRune() || k.Modifiers.Has(key.ModCtrl|key.ModAlt|key.ModMeta) {
		return nil
	}
	r := k.Rune
	opens := strings.ContainsRune(openChars, r)
	closes := strings.ContainsRune(closeChars, r)
	if !opens && !closes {
		return nil
	}

	pos, err := e.codec.Save()
	if err != nil {
		return err
	}
	before, after := e.beforeCaret(pos), e.afterCaret(pos)
	escaped := strings.HasSuffix(before, `\`)
	next := runeSlice(after, 0, 1)

	if closes && pos.IsCollapsed() && !escaped && next == string(r) {
		ev.PreventDefault()
		e.codec.Restore(caret.Collapsed(pos.Start + 1))
		return nil
	}
	if !opens || escaped {
		return nil
	}

	isQuote := r == '\'' || r == '"'
	if pos.IsCollapsed() && !isQuote && next != "" && next != " " && next != "\n" {
		return nil
	}

	ev.PreventDefault()
	wrapped := runeSlice(e.String(), pos.Start, pos.End)
	closer := []rune(closeChars)[strings.IndexRune(openChars, r)]
	if err := e.insert(string(r) + wrapped + string(closer)); err != nil {
		return err
	}
	e.codec.Restore(caret.Collapsed(pos.Start + 1 + runeLen(wrapped)))
	return nil
}

// handleUndoRedo applies the undo and redo shortcuts.
func (e *Editor) handleUndoRedo(ev *dom.Event, o *Options) error {
	var err error
	switch {
	case o.Undo.Matches(ev.Key):
		ev.PreventDefault()
		err = e.Undo()
	case o.Redo.Matches(ev.Key):
		ev.PreventDefault()
		err = e.Redo()
	default:
		return nil
	}
	if errors.Is(err, history.ErrNothingToUndo) || errors.Is(err, history.ErrNothingToRedo) {
		return nil
	}
	return err
}

// shouldRecord reports whether a keystroke can change the text in a way
// worth a history snapshot.
func shouldRecord(k key.Event, o *Options) bool {
	if o.Undo.Matches(k) || o.Redo.Matches(k) {
		return false
	}
	switch k.Key {
	case key.KeyMeta, key.KeyControl, key.KeyAlt:
		return false
	}
	return !k.Key.IsArrow()
}

// isCopy reports whether k is the copy shortcut.
func isCopy(k key.Event) bool {
	return k.Modifiers.HasCtrlOrMeta() && k.IsLetter('c')
}
