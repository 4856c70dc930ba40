package editor

import "github.com/dshills/keyjar/internal/dom"

// listen registers the editor's handlers on the region.
func (e *Editor) listen() {
	handlers := []struct {
		typ dom.EventType
		fn  dom.Handler
	}{
		{dom.EventKeyDown, e.onKeyDown},
		{dom.EventKeyUp, e.onKeyUp},
		{dom.EventFocus, e.onFocus},
		{dom.EventBlur, e.onBlur},
		{dom.EventPaste, e.onPaste},
		{dom.EventCut, e.onCut},
	}
	for _, h := range handlers {
		e.removers = append(e.removers, e.doc.Listen(e.root, h.typ, h.fn))
	}
}

func (e *Editor) onFocus(*dom.Event) error {
	e.focused = true
	return nil
}

func (e *Editor) onBlur(*dom.Event) error {
	e.focused = false
	return nil
}
