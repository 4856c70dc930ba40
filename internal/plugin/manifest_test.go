package plugin

import (
	"errors"
	"slices"
	"testing"
)

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(`{
		"name": "toml",
		"description": "TOML keys and strings",
		"languages": ["toml", "TOML-1.0"],
		"extensions": ["toml", ".tml"]
	}`))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	if m.Main != "init.lua" || m.Version != "0.0.0" {
		t.Errorf("defaults not applied: main=%q version=%q", m.Main, m.Version)
	}
	if !slices.Equal(m.Extensions, []string{".toml", ".tml"}) {
		t.Errorf("extensions = %q", m.Extensions)
	}
	if !m.HandlesLanguage("toml-1.0") {
		t.Error("language match should ignore case")
	}
	if !m.HandlesFile("Cargo.TOML") || m.HandlesFile("Makefile") {
		t.Error("file matching by extension is wrong")
	}
	if m.String() != "toml@0.0.0" {
		t.Errorf("String() = %q", m.String())
	}
}

func TestParseManifestLanguageDefaultsToName(t *testing.T) {
	m, err := ParseManifest([]byte(`{"name": "ini"}`))
	if err != nil {
		t.Fatal(err)
	}
	if !m.HandlesLanguage("ini") {
		t.Errorf("languages = %q", m.Languages)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"malformed", `{"name": `, ErrInvalidManifest},
		{"not an object", `["toml"]`, ErrInvalidManifest},
		{"missing name", `{"main": "init.lua"}`, ErrMissingName},
		{"bad name", `{"name": "Has Spaces"}`, ErrInvalidName},
		{"not lua", `{"name": "x", "main": "init.js"}`, ErrInvalidMain},
		{"escapes dir", `{"name": "x", "main": "../evil.lua"}`, ErrInvalidMain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
