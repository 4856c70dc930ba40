package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// ManifestFile is the manifest name inside a plugin directory.
const ManifestFile = "plugin.json"

// namePattern allows lowercase names with digits, dashes and underscores.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Manifest describes a highlighter plugin.
type Manifest struct {
	Name        string
	Version     string
	Description string

	// Main is the entry script relative to the plugin directory.
	Main string

	// Languages are names the plugin answers to, compared case
	// insensitively.
	Languages []string

	// Extensions are file extensions including the dot.
	Extensions []string

	// dir is the plugin directory.
	dir string
}

// LoadManifest reads and validates a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// ParseManifest decodes and validates manifest JSON.
func ParseManifest(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidManifest)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidManifest)
	}

	m := &Manifest{
		Name:        doc.Get("name").String(),
		Version:     doc.Get("version").String(),
		Description: doc.Get("description").String(),
		Main:        doc.Get("main").String(),
		Languages:   stringList(doc.Get("languages")),
		Extensions:  stringList(doc.Get("extensions")),
	}
	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func stringList(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// newMinimalManifest describes a plugin without plugin.json. It handles
// files whose extension is its name.
func newMinimalManifest(name, dir, main string) *Manifest {
	m := &Manifest{Name: name, Main: main, Extensions: []string{"." + name}, dir: dir}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Main == "" {
		m.Main = "init.lua"
	}
	if m.Version == "" {
		m.Version = "0.0.0"
	}
	for i, ext := range m.Extensions {
		if !strings.HasPrefix(ext, ".") {
			m.Extensions[i] = "." + ext
		}
	}
	if len(m.Languages) == 0 && m.Name != "" {
		m.Languages = []string{m.Name}
	}
}

// Validate checks the manifest fields.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingName
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, m.Name)
	}
	if filepath.Ext(m.Main) != ".lua" || filepath.IsAbs(m.Main) || strings.HasPrefix(filepath.Clean(m.Main), "..") {
		return fmt.Errorf("%w: %q", ErrInvalidMain, m.Main)
	}
	return nil
}

// Dir returns the plugin directory.
func (m *Manifest) Dir() string {
	return m.dir
}

// MainPath returns the path of the entry script.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.dir, m.Main)
}

// HandlesLanguage reports whether lang is one of the plugin's languages.
func (m *Manifest) HandlesLanguage(lang string) bool {
	return slices.ContainsFunc(m.Languages, func(l string) bool {
		return strings.EqualFold(l, lang)
	})
}

// HandlesFile reports whether the extension of filename is one of the
// plugin's extensions.
func (m *Manifest) HandlesFile(filename string) bool {
	ext := filepath.Ext(filename)
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(m.Extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func (m *Manifest) String() string {
	return fmt.Sprintf("%s@%s", m.Name, m.Version)
}
