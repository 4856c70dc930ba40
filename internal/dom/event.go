package dom

import (
	"errors"
	"sort"

	"golang.org/x/net/html"

	"github.com/dshills/keyjar/internal/input/key"
)

// EventType identifies the kind of event delivered to listeners.
type EventType int

const (
	// EventKeyDown is sent when a key is pressed.
	EventKeyDown EventType = iota
	// EventKeyUp is sent when a key is released.
	EventKeyUp
	// EventFocus is sent to an element that gained focus.
	EventFocus
	// EventBlur is sent to an element that lost focus.
	EventBlur
	// EventPaste is sent when the user pastes clipboard content.
	EventPaste
	// EventCut is sent when the user cuts the selection.
	EventCut
	// EventCopy is sent when the user copies the selection.
	EventCopy
)

// String returns the DOM name of the event type.
func (t EventType) String() string {
	switch t {
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventPaste:
		return "paste"
	case EventCut:
		return "cut"
	case EventCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// MIME types understood by DataTransfer.
const (
	MIMEText = "text/plain"
	MIMEHTML = "text/html"
)

// DataTransfer carries clipboard payloads keyed by MIME type.
type DataTransfer struct {
	data map[string]string
}

// NewDataTransfer creates an empty payload.
func NewDataTransfer() *DataTransfer {
	return &DataTransfer{data: make(map[string]string)}
}

// GetData returns the payload for format, or "" when absent.
// A nil DataTransfer has no payloads.
func (dt *DataTransfer) GetData(format string) string {
	if dt == nil {
		return ""
	}
	return dt.data[format]
}

// SetData stores a payload for format.
func (dt *DataTransfer) SetData(format, data string) {
	if dt.data == nil {
		dt.data = make(map[string]string)
	}
	dt.data[format] = data
}

// Types returns the stored formats in sorted order.
func (dt *DataTransfer) Types() []string {
	if dt == nil {
		return nil
	}
	types := make([]string, 0, len(dt.data))
	for t := range dt.data {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Event is a single input event.
type Event struct {
	Type EventType

	// Key is set for keyboard events.
	Key key.Event

	// Clipboard is set for paste, cut and copy events.
	Clipboard *DataTransfer

	// IsComposing is true while an input method composition is active.
	IsComposing bool

	defaultPrevented bool
	stopped          bool
}

// NewKeyEvent creates a keyboard event.
func NewKeyEvent(t EventType, k key.Event) *Event {
	return &Event{Type: t, Key: k}
}

// NewClipboardEvent creates a clipboard event carrying dt.
func NewClipboardEvent(t EventType, dt *DataTransfer) *Event {
	if dt == nil {
		dt = NewDataTransfer()
	}
	return &Event{Type: t, Clipboard: dt}
}

// PreventDefault cancels the platform's default action for the event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching ancestors of the target.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Handler handles an event. A returned error is reported to the caller of
// Dispatch; it does not stop other listeners.
type Handler func(ev *Event) error

type listener struct {
	id      uint64
	target  *html.Node
	typ     EventType
	handler Handler
}

// Listen registers h for events of type t targeted at n or its descendants.
// The returned function removes the listener; calling it more than once is
// harmless.
func (d *Document) Listen(n *html.Node, t EventType, h Handler) (remove func()) {
	d.nextListener++
	id := d.nextListener
	d.listeners = append(d.listeners, listener{id: id, target: n, typ: t, handler: h})
	return func() {
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (d *Document) ListenerCount() int {
	return len(d.listeners)
}

// Dispatch delivers ev to listeners on target and then on each ancestor,
// until one stops propagation. Listener errors are joined.
func (d *Document) Dispatch(target *html.Node, ev *Event) error {
	var errs []error
	for n := target; n != nil && !ev.stopped; n = n.Parent {
		// Snapshot so listeners may remove themselves while running.
		current := make([]listener, 0, len(d.listeners))
		for _, l := range d.listeners {
			if l.target == n && l.typ == ev.Type {
				current = append(current, l)
			}
		}
		for _, l := range current {
			if !d.hasListener(l.id) {
				continue
			}
			if err := l.handler(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (d *Document) hasListener(id uint64) bool {
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}
