package plugin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dshills/keyjar/internal/logging"
	"github.com/dshills/keyjar/internal/plugin/lua"
)

// Info is a discovered plugin. Err is set when the plugin was found but
// cannot be used.
type Info struct {
	Name     string
	Dir      string
	Manifest *Manifest
	Err      error
}

// Usable reports whether the plugin can be opened.
func (i *Info) Usable() bool {
	return i.Err == nil && i.Manifest != nil
}

// Loader discovers plugins in a list of directories.
type Loader struct {
	paths      []string
	discovered map[string]*Info
	log        *logging.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPaths replaces the search paths.
func WithPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.paths = paths
	}
}

// WithLogger sets the logger.
func WithLogger(log *logging.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a loader. Call Discover before looking plugins up.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		paths:      DefaultPaths(),
		discovered: make(map[string]*Info),
		log:        logging.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.WithComponent("plugin")
	return l
}

// DefaultPaths returns the user plugin directory followed by the project
// directory .keyjar/plugins.
func DefaultPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "keyjar", "plugins"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".keyjar", "plugins"))
	}
	return paths
}

// Paths returns the search paths.
func (l *Loader) Paths() []string {
	return l.paths
}

// Discover scans the search paths and returns every plugin found, sorted
// by name. Missing directories are skipped.
func (l *Loader) Discover() ([]*Info, error) {
	l.discovered = make(map[string]*Info)
	var errs []error
	for _, p := range l.paths {
		if err := l.discoverIn(p); err != nil {
			errs = append(errs, err)
		}
	}

	infos := make([]*Info, 0, len(l.discovered))
	for _, info := range l.discovered {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	l.log.Debug("discovered %d plugins", len(infos))
	return infos, errors.Join(errs...)
}

func (l *Loader) discoverIn(base string) error {
	entries, err := os.ReadDir(base)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := filepath.Join(base, entry.Name())
		var info *Info
		switch {
		case entry.IsDir():
			info = inspectDir(entry.Name(), path)
		case filepath.Ext(entry.Name()) == ".lua":
			name := strings.TrimSuffix(entry.Name(), ".lua")
			info = &Info{Name: name, Dir: base, Manifest: newMinimalManifest(name, base, entry.Name())}
			if err := info.Manifest.Validate(); err != nil {
				info.Err = err
			}
		default:
			continue
		}
		if _, ok := l.discovered[info.Name]; ok {
			continue
		}
		if info.Err != nil {
			l.log.Warn("plugin %s: %v", path, info.Err)
		}
		l.discovered[info.Name] = info
	}
	return nil
}

// inspectDir reads a plugin directory.
func inspectDir(name, dir string) *Info {
	info := &Info{Name: name, Dir: dir}

	manifestPath := filepath.Join(dir, ManifestFile)
	if _, err := os.Stat(manifestPath); err == nil {
		m, err := LoadManifest(manifestPath)
		if err != nil {
			info.Err = err
			return info
		}
		info.Name = m.Name
		info.Manifest = m
		return info
	}

	for _, main := range []string{"init.lua", "plugin.lua"} {
		if _, err := os.Stat(filepath.Join(dir, main)); err == nil {
			info.Manifest = newMinimalManifest(name, dir, main)
			if err := info.Manifest.Validate(); err != nil {
				info.Err = err
			}
			return info
		}
	}
	info.Err = ErrNoEntryPoint
	return info
}

// Get returns a plugin by name.
func (l *Loader) Get(name string) (*Info, bool) {
	info, ok := l.discovered[name]
	return info, ok
}

// ForLanguage returns the first usable plugin, by name order, that
// handles lang. A plugin whose name is lang wins.
func (l *Loader) ForLanguage(lang string) (*Info, error) {
	if info, ok := l.discovered[lang]; ok && info.Usable() {
		return info, nil
	}
	return l.find(func(m *Manifest) bool { return m.HandlesLanguage(lang) }, lang)
}

// ForFile returns the first usable plugin, by name order, that handles
// the extension of filename.
func (l *Loader) ForFile(filename string) (*Info, error) {
	return l.find(func(m *Manifest) bool { return m.HandlesFile(filename) }, filename)
}

func (l *Loader) find(match func(*Manifest) bool, what string) (*Info, error) {
	names := make([]string, 0, len(l.discovered))
	for name := range l.discovered {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		info := l.discovered[name]
		if info.Usable() && match(info.Manifest) {
			return info, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, what)
}

// Open loads the plugin's entry script into a Lua highlighter.
func Open(ctx context.Context, info *Info, opts ...lua.StateOption) (*lua.Highlighter, error) {
	if !info.Usable() {
		if info.Err != nil {
			return nil, fmt.Errorf("plugin %s: %w", info.Name, info.Err)
		}
		return nil, fmt.Errorf("plugin %s: %w", info.Name, ErrNoEntryPoint)
	}
	data, err := os.ReadFile(info.Manifest.MainPath())
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", info.Name, err)
	}
	return lua.NewHighlighter(ctx, info.Name, string(data), opts...)
}
