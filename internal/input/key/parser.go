package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "(", "\""
//   - Named keys: "Enter", "Escape", "Tab", "ArrowLeft", "Control"
//   - With modifiers: "Ctrl+Z", "Alt+F4", "Ctrl+Shift+Z"
//
// "Mod" is not accepted here since an event has concrete modifiers; use
// ParseBinding for shortcuts.
func Parse(spec string) (Event, error) {
	b, err := ParseBinding(spec)
	if err != nil {
		return Event{}, err
	}
	if b.Command {
		return Event{}, fmt.Errorf("%w: %q uses Mod, which only bindings accept", ErrInvalidSpec, spec)
	}
	if b.Key == KeyRune {
		return NewRuneEvent(b.Rune, b.Modifiers), nil
	}
	return NewSpecialEvent(b.Key, b.Modifiers), nil
}

// ParseBinding parses a shortcut specification. In addition to Parse's
// formats it accepts "Mod" as a modifier meaning Control or Meta.
func ParseBinding(spec string) (Binding, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Binding{}, ErrEmptySpec
	}

	// A lone "+" is the plus character, not a separator.
	if spec == "+" {
		return Binding{Key: KeyRune, Rune: '+'}, nil
	}

	parts := strings.Split(spec, "+")
	var b Binding
	for _, p := range parts[:len(parts)-1] {
		p = strings.TrimSpace(p)
		if strings.EqualFold(p, "mod") {
			b.Command = true
			continue
		}
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Binding{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		b.Modifiers = b.Modifiers.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Binding{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}
	return parseKey(b, keyPart)
}

// parseKey fills in the key of b from the last part of a specification.
func parseKey(b Binding, keyPart string) (Binding, error) {
	switch strings.ToLower(keyPart) {
	case "space":
		b.Key, b.Rune = KeyRune, ' '
		return b, nil
	case "plus":
		b.Key, b.Rune = KeyRune, '+'
		return b, nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		commanded := b.Command || b.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
		switch {
		case commanded:
			// Shortcuts are written in upper case but name the key,
			// not the shifted character.
			r = unicode.ToLower(r)
		case unicode.IsUpper(r):
			b.Modifiers = b.Modifiers.With(ModShift)
		}
		b.Key, b.Rune = KeyRune, r
		return b, nil
	}

	if k := FromName(keyPart); k != KeyNone {
		b.Key = k
		return b, nil
	}
	return Binding{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code and tests.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return ev
}

// MustParseBinding parses a binding and panics on error.
func MustParseBinding(spec string) Binding {
	b, err := ParseBinding(spec)
	if err != nil {
		panic("invalid key binding: " + spec + ": " + err.Error())
	}
	return b
}
