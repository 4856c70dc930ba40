package plugin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/keyjar/internal/highlight"
	"github.com/dshills/keyjar/internal/logging"
)

const numberScript = `
function highlight(text)
  local spans = {}
  for s, e in text:gmatch("()%d+()") do
    spans[#spans + 1] = {s, e - 1, "m"}
  end
  return spans
end
`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

// pluginTree lays out two search paths:
//
//	user/ini.lua
//	user/toml/plugin.json + main.lua
//	user/broken/            (no entry point)
//	user/notes.txt          (ignored)
//	project/ini.lua         (shadowed by user/ini.lua)
//	project/conf/plugin.lua
func pluginTree(t *testing.T) (user, project string) {
	t.Helper()
	root := t.TempDir()
	user = filepath.Join(root, "user")
	project = filepath.Join(root, "project")

	writeFile(t, filepath.Join(user, "ini.lua"), numberScript)
	writeFile(t, filepath.Join(user, "toml", ManifestFile),
		`{"name": "toml", "main": "main.lua", "extensions": [".toml"]}`)
	writeFile(t, filepath.Join(user, "toml", "main.lua"), numberScript)
	if err := os.MkdirAll(filepath.Join(user, "broken"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(user, "notes.txt"), "not a plugin")
	writeFile(t, filepath.Join(project, "ini.lua"), "this is not lua")
	writeFile(t, filepath.Join(project, "conf", "plugin.lua"), numberScript)
	return user, project
}

func newTestLoader(t *testing.T, paths ...string) *Loader {
	t.Helper()
	l := NewLoader(WithPaths(paths...), WithLogger(logging.Null()))
	if _, err := l.Discover(); err != nil {
		t.Fatalf("Discover: %v", err)
	}
	return l
}

func TestDiscover(t *testing.T) {
	user, project := pluginTree(t)
	l := NewLoader(WithPaths(user, project, filepath.Join(user, "missing")), WithLogger(logging.Null()))

	infos, err := l.Discover()
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
	}
	want := []string{"broken", "conf", "ini", "toml"}
	if len(names) != len(want) {
		t.Fatalf("names = %q, want %q", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names = %q, want %q", names, want)
			break
		}
	}

	ini, _ := l.Get("ini")
	if ini.Dir != user {
		t.Errorf("ini found in %s, want the first search path", ini.Dir)
	}
	broken, _ := l.Get("broken")
	if broken.Usable() || !errors.Is(broken.Err, ErrNoEntryPoint) {
		t.Errorf("broken: usable=%t err=%v", broken.Usable(), broken.Err)
	}
	conf, _ := l.Get("conf")
	if conf.Manifest.Main != "plugin.lua" {
		t.Errorf("conf main = %q", conf.Manifest.Main)
	}
}

func TestLookup(t *testing.T) {
	user, project := pluginTree(t)
	l := newTestLoader(t, user, project)

	tests := []struct {
		name string
		find func() (*Info, error)
		want string
	}{
		{"language by name", func() (*Info, error) { return l.ForLanguage("toml") }, "toml"},
		{"file by manifest extension", func() (*Info, error) { return l.ForFile("Cargo.toml") }, "toml"},
		{"file by single-file name", func() (*Info, error) { return l.ForFile("php.ini") }, "ini"},
		{"file by directory name", func() (*Info, error) { return l.ForFile("app.conf") }, "conf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := tt.find()
			if err != nil {
				t.Fatal(err)
			}
			if info.Name != tt.want {
				t.Errorf("found %s, want %s", info.Name, tt.want)
			}
		})
	}

	if _, err := l.ForFile("main.go"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("ForFile(main.go) err = %v", err)
	}
	if _, err := l.ForLanguage("broken"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("unusable plugin should not be returned, err = %v", err)
	}
}

func TestOpen(t *testing.T) {
	user, _ := pluginTree(t)
	l := newTestLoader(t, user)

	info, err := l.ForFile("settings.toml")
	if err != nil {
		t.Fatal(err)
	}
	h, err := Open(context.Background(), info)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()

	if h.Language() != "lua:toml" {
		t.Errorf("Language() = %q", h.Language())
	}
	spans, err := h.Tokenize("port = 8080")
	if err != nil {
		t.Fatal(err)
	}
	want := []highlight.Span{{Start: 7, End: 11, Class: "m"}}
	if len(spans) != 1 || spans[0] != want[0] {
		t.Errorf("spans = %+v, want %+v", spans, want)
	}

	broken, _ := l.Get("broken")
	if _, err := Open(context.Background(), broken); !errors.Is(err, ErrNoEntryPoint) {
		t.Errorf("Open(broken) err = %v", err)
	}
}
