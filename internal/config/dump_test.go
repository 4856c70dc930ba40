package config

import (
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/keyjar/internal/config/loader"
)

func TestSettingsJSONRoundTrip(t *testing.T) {
	s := Defaults()
	s.Editor.Tab = "\t"
	s.Editor.AddClosing = false
	s.Editor.HistoryDelay = 450 * time.Millisecond
	s.History.Capacity = 42
	s.Highlight.Name = "chroma:go"
	s.Logging.File = "/tmp/keyjar.log"

	data, err := s.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if got := gjson.GetBytes(data, "editor.historyDelay").String(); got != "450ms" {
		t.Errorf("editor.historyDelay = %q, want %q", got, "450ms")
	}

	m, err := loader.JSON.Decode("dump.json", data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := FromMap(m)
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if got != s {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, s)
	}
}
