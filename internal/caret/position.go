package caret

import "fmt"

// Direction records which end of a selection the user is extending.
type Direction uint8

const (
	// DirNone means anchor and focus coincide.
	DirNone Direction = iota
	// DirForward means the anchor precedes the focus.
	DirForward
	// DirBackward means the focus precedes the anchor.
	DirBackward
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirForward:
		return "forward"
	case DirBackward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// Position is a selection expressed as character offsets into the text
// content of a region. Start <= End always holds; Dir only says which end
// is the anchor.
type Position struct {
	Start int
	End   int
	Dir   Direction
}

// NewPosition creates a position from anchor and focus offsets.
func NewPosition(anchor, focus int) Position {
	switch {
	case anchor < focus:
		return Position{Start: anchor, End: focus, Dir: DirForward}
	case anchor > focus:
		return Position{Start: focus, End: anchor, Dir: DirBackward}
	default:
		return Position{Start: anchor, End: anchor}
	}
}

// Collapsed returns a caret at offset.
func Collapsed(offset int) Position {
	return Position{Start: offset, End: offset}
}

// IsCollapsed reports whether the position is a caret rather than a range.
func (p Position) IsCollapsed() bool {
	return p.Start == p.End
}

// Len returns the number of selected characters.
func (p Position) Len() int {
	return p.End - p.Start
}

// Anchor returns the offset the selection was started from.
func (p Position) Anchor() int {
	if p.Dir == DirBackward {
		return p.End
	}
	return p.Start
}

// Focus returns the offset the selection extends to.
func (p Position) Focus() int {
	if p.Dir == DirBackward {
		return p.Start
	}
	return p.End
}

// SameRange reports whether p and other cover the same characters,
// ignoring direction.
func (p Position) SameRange(other Position) bool {
	return p.Start == other.Start && p.End == other.End
}

// String returns a compact representation like "3-7 backward".
func (p Position) String() string {
	if p.IsCollapsed() {
		return fmt.Sprintf("%d", p.Start)
	}
	return fmt.Sprintf("%d-%d %s", p.Start, p.End, p.Dir)
}
