// Package key provides keyboard event types for the editor.
//
// Keys are named the way a browser names KeyboardEvent.key values:
//
//   - Key: a named key (Enter, Tab, ArrowLeft, Control, ...) or KeyRune
//   - Modifier: the Shift/Control/Alt/Meta state held during the press
//   - Event: a single press with its character and modifiers
//
// # Key Specifications
//
// Specifications are written as "Enter", "z", "Ctrl+Z", "Ctrl+Shift+Z" or
// "Mod+Z", where Mod means Control or Meta (Cmd on macOS). Specifications
// are used by configuration and tests to describe shortcuts.
package key
