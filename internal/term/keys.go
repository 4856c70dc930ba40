package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyjar/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// convertKey turns a tcell key event into a key.Event.
//
// Terminals send Tab, Enter and Backspace as Ctrl+I, Ctrl+M and Ctrl+H, so
// those codes are read as the named keys before Ctrl+letter decoding.
func convertKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())

	if ev.Key() == tcell.KeyBacktab {
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift)), true
	}
	if k, ok := specialKeys[ev.Key()]; ok {
		// Ctrl+H and friends report ModCtrl; the named key is what was
		// pressed.
		if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyEnter || ev.Key() == tcell.KeyBackspace {
			mods = mods.Without(key.ModCtrl)
		}
		return key.NewSpecialEvent(k, mods), true
	}

	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := 'a' + rune(ev.Key()-tcell.KeyCtrlA)
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if mods.HasCtrlOrMeta() {
			// Shortcut letters compare case-insensitively; Shift stays in
			// the modifiers.
			r = unicode.ToLower(r)
		} else {
			// Shift is already applied to the character.
			mods = mods.Without(key.ModShift)
		}
		return key.NewRuneEvent(r, mods), true
	}
	return key.Event{}, false
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
