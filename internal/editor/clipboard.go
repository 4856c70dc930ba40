package editor

import (
	"github.com/dshills/keyjar/internal/caret"
	"github.com/dshills/keyjar/internal/dom"
)

// onPaste inserts the plain-text payload of a paste as one undo step.
func (e *Editor) onPaste(ev *dom.Event) error {
	if ev.DefaultPrevented() {
		return nil
	}
	ev.PreventDefault()

	e.record(true)
	text := normalizeNewlines(ev.Clipboard.GetData(dom.MIMEText))
	pos, err := e.codec.Save()
	if err != nil {
		return err
	}
	if err := e.insert(text); err != nil {
		return err
	}
	end := caret.Collapsed(pos.Start + runeLen(text))
	e.runHighlighter(end)
	e.codec.Restore(end)
	e.record(true)
	e.notify()
	return nil
}

// onCut moves the selected text to the event's payload and deletes it.
func (e *Editor) onCut(ev *dom.Event) error {
	if ev.DefaultPrevented() {
		return nil
	}
	ev.PreventDefault()

	e.record(true)
	pos, err := e.codec.Save()
	if err != nil {
		return err
	}
	if ev.Clipboard == nil {
		ev.Clipboard = dom.NewDataTransfer()
	}
	ev.Clipboard.SetData(dom.MIMEText, runeSlice(e.String(), pos.Start, pos.End))
	if err := e.insert(""); err != nil {
		return err
	}
	e.runHighlighter(caret.Collapsed(pos.Start))
	e.codec.Restore(caret.Collapsed(pos.Start))
	e.record(true)
	e.notify()
	return nil
}
