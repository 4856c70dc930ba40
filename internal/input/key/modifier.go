package key

import "strings"

// Modifier is a set of held modifier keys, matching the ctrlKey, altKey,
// shiftKey and metaKey flags of a browser keyboard event.
type Modifier uint8

// Modifier bits. ModNone is the empty set.
const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	// ModMeta is Cmd on macOS and the Windows/Super key elsewhere.
	ModMeta
)

// modifierOrder is the order modifiers appear in specifications, with the
// spellings Parse accepts for each. The first spelling is canonical.
var modifierOrder = []struct {
	mod   Modifier
	names []string
}{
	{ModCtrl, []string{"Ctrl", "Control"}},
	{ModAlt, []string{"Alt", "Option", "Opt"}},
	{ModShift, []string{"Shift"}},
	{ModMeta, []string{"Meta", "Cmd", "Command", "Super"}},
}

// Has reports whether any modifier in mod is held.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// HasShift reports whether Shift is held.
func (m Modifier) HasShift() bool { return m.Has(ModShift) }

// HasCtrl reports whether Control is held.
func (m Modifier) HasCtrl() bool { return m.Has(ModCtrl) }

// HasAlt reports whether Alt is held.
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }

// HasMeta reports whether Meta is held.
func (m Modifier) HasMeta() bool { return m.Has(ModMeta) }

// HasCtrlOrMeta reports whether the platform command modifier is held:
// Control on Linux and Windows, Cmd on macOS.
func (m Modifier) HasCtrlOrMeta() bool { return m.Has(ModCtrl | ModMeta) }

// With adds mod to the set.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// Without removes mod from the set.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// String joins the canonical names in specification order, for example
// "Ctrl+Shift". The empty set is "".
func (m Modifier) String() string {
	names := make([]string, 0, len(modifierOrder))
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			names = append(names, o.names[0])
		}
	}
	return strings.Join(names, "+")
}

// ModifierFromName returns the modifier spelled name, ignoring case and
// surrounding space, or ModNone.
func ModifierFromName(name string) Modifier {
	name = strings.TrimSpace(name)
	for _, o := range modifierOrder {
		for _, n := range o.names {
			if strings.EqualFold(n, name) {
				return o.mod
			}
		}
	}
	return ModNone
}
