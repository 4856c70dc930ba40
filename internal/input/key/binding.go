package key

import (
	"strings"
	"unicode"
)

// Binding describes a shortcut that key events are matched against.
type Binding struct {
	Key       Key
	Rune      rune
	Modifiers Modifier

	// Command matches either Control or Meta, so one binding covers
	// Ctrl+Z on Linux/Windows and Cmd+Z on macOS.
	Command bool
}

// Matches reports whether ev triggers the binding. Letters compare
// case-insensitively; Shift must match exactly.
func (b Binding) Matches(ev Event) bool {
	if b.Key != ev.Key {
		return false
	}
	if b.Key == KeyRune && unicode.ToLower(b.Rune) != unicode.ToLower(ev.Rune) {
		return false
	}
	mods := ev.Modifiers
	if b.Command {
		if !mods.HasCtrlOrMeta() {
			return false
		}
		mods = mods.Without(ModCtrl | ModMeta)
		return mods == b.Modifiers.Without(ModCtrl|ModMeta)
	}
	return mods == b.Modifiers
}

// String returns the specification the binding was parsed from in
// canonical form.
func (b Binding) String() string {
	if !b.Command {
		return Event{Key: b.Key, Rune: b.Rune, Modifiers: b.Modifiers}.String()
	}
	// Ctrl always renders first, so it stands in for Mod.
	ev := Event{Key: b.Key, Rune: b.Rune, Modifiers: b.Modifiers.Without(ModMeta).With(ModCtrl)}
	return "Mod" + strings.TrimPrefix(ev.String(), "Ctrl")
}
