package term

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "monokai"

// Theme maps highlight classes to terminal styles.
type Theme struct {
	Base      tcell.Style
	Selection tcell.Style
	Status    tcell.Style
	Classes   map[string]tcell.Style
}

// Style returns the style for class, or Base.
func (t Theme) Style(class string) tcell.Style {
	if s, ok := t.Classes[class]; ok {
		return s
	}
	return t.Base
}

// PlainTheme uses the terminal's own colors.
func PlainTheme() Theme {
	return Theme{
		Base:      tcell.StyleDefault,
		Selection: tcell.StyleDefault.Reverse(true),
		Status:    tcell.StyleDefault.Reverse(true),
		Classes:   map[string]tcell.Style{},
	}
}

// ChromaTheme builds a theme from a chroma style. Every CSS class chroma
// knows gets the style of its token type, so class names produced by any
// highlighter in this module resolve. Unknown names use chroma's fallback
// style.
func ChromaTheme(name string) Theme {
	style := styles.Get(name)

	bg := style.Get(chroma.Background)
	base := tcell.StyleDefault.
		Foreground(convertColour(bg.Colour)).
		Background(convertColour(bg.Background))

	t := Theme{
		Base:      base,
		Selection: base.Reverse(true),
		Status:    base.Reverse(true).Bold(true),
		Classes:   make(map[string]tcell.Style, len(chroma.StandardTypes)),
	}
	for tt, class := range chroma.StandardTypes {
		if class == "" {
			continue
		}
		t.Classes[class] = entryStyle(base, style.Get(tt))
	}
	return t
}

func entryStyle(base tcell.Style, e chroma.StyleEntry) tcell.Style {
	s := base
	if e.Colour.IsSet() {
		s = s.Foreground(convertColour(e.Colour))
	}
	if e.Background.IsSet() {
		s = s.Background(convertColour(e.Background))
	}
	if e.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if e.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if e.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}

func convertColour(c chroma.Colour) tcell.Color {
	if !c.IsSet() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
