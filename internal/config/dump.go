package config

import (
	"github.com/tidwall/sjson"
)

// JSON encodes the settings as a JSON document that Load reads back to the
// same values. Durations are written in time.Duration notation.
func (s Settings) JSON() ([]byte, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"editor.tab", s.Editor.Tab},
		{"editor.indentOn", s.Editor.IndentOn},
		{"editor.moveToNewLine", s.Editor.MoveToNewLine},
		{"editor.spellcheck", s.Editor.Spellcheck},
		{"editor.catchTab", s.Editor.CatchTab},
		{"editor.preserveIndent", s.Editor.PreserveIndent},
		{"editor.addClosing", s.Editor.AddClosing},
		{"editor.undo", s.Editor.Undo},
		{"editor.redo", s.Editor.Redo},
		{"editor.highlightDelay", s.Editor.HighlightDelay.String()},
		{"editor.historyDelay", s.Editor.HistoryDelay.String()},
		{"history.enabled", s.History.Enabled},
		{"history.capacity", s.History.Capacity},
		{"highlight.name", s.Highlight.Name},
		{"highlight.script", s.Highlight.Script},
		{"logging.level", s.Logging.Level},
		{"logging.file", s.Logging.File},
	}

	data := []byte("{}")
	for _, f := range fields {
		var err error
		if data, err = sjson.SetBytes(data, f.path, f.value); err != nil {
			return nil, err
		}
	}
	return data, nil
}
