package key

import (
	"strings"
	"time"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the modifier keys held during the press.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a named key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{
		Key:       k,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if a command modifier is held.
// Shift alone does not count for characters since it selects the character.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Is returns true if the event is the named key.
func (e Event) Is(k Key) bool {
	return e.Key == k
}

// IsLetter returns true if the event is the given letter, ignoring case.
func (e Event) IsLetter(r rune) bool {
	return e.IsRune() && unicode.ToLower(e.Rune) == unicode.ToLower(r)
}

// Name returns the browser KeyboardEvent.key value for the event.
func (e Event) Name() string {
	if e.Key == KeyRune {
		return string(e.Rune)
	}
	return e.Key.String()
}

// String returns a canonical specification like "Ctrl+Shift+Z" that Parse
// accepts.
func (e Event) String() string {
	var parts []string
	if e.Modifiers.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "Alt")
	}
	if e.Modifiers.HasShift() && (!e.IsRune() || e.IsModified()) {
		parts = append(parts, "Shift")
	}
	if e.Modifiers.HasMeta() {
		parts = append(parts, "Meta")
	}

	switch {
	case e.IsRune() && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.IsRune() && e.Rune == '+':
		parts = append(parts, "Plus")
	case e.IsRune() && e.IsModified():
		parts = append(parts, strings.ToUpper(string(e.Rune)))
	default:
		parts = append(parts, e.Name())
	}
	return strings.Join(parts, "+")
}
