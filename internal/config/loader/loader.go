// Package loader reads configuration sources into nested maps.
//
// Files are decoded by extension (TOML, YAML or JSON). Every format honors
// an "@include" key naming one file or a list of files, resolved relative
// to the including file and merged underneath it. Environment variables
// with a fixed prefix form one more source. Sources are combined with
// DeepMerge.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxIncludeDepth bounds nested @include directives.
const DefaultMaxIncludeDepth = 8

// IncludeKey names the files a configuration file pulls in.
const IncludeKey = "@include"

var (
	// ErrUnknownFormat is returned for files with an unsupported extension.
	ErrUnknownFormat = errors.New("unknown config format")

	// ErrIncludeDepthExceeded is returned when includes nest too deeply,
	// usually because two files include each other.
	ErrIncludeDepthExceeded = errors.New("include depth exceeded")
)

// Loader produces a configuration map.
type Loader interface {
	// Load returns nil, nil when the source does not exist.
	Load() (map[string]any, error)
}

// FileSystem is the file access a FileLoader needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the operating system file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// FromFS adapts an fs.FS such as fstest.MapFS. Paths are cleaned and
// stripped of a leading slash.
func FromFS(fsys fs.FS) FileSystem {
	return fsAdapter{fsys}
}

type fsAdapter struct{ fsys fs.FS }

func (a fsAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(a.fsys, strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/"))
}

// Format decodes one configuration syntax.
type Format interface {
	Name() string
	Decode(source string, data []byte) (map[string]any, error)
}

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// FileLoader loads a configuration file and its includes.
type FileLoader struct {
	fs       FileSystem
	path     string
	maxDepth int
}

// FileOption configures a FileLoader.
type FileOption func(*FileLoader)

// WithFS sets the file system.
func WithFS(fsys FileSystem) FileOption {
	return func(l *FileLoader) { l.fs = fsys }
}

// WithMaxIncludeDepth sets how deeply includes may nest.
func WithMaxIncludeDepth(n int) FileOption {
	return func(l *FileLoader) { l.maxDepth = n }
}

// NewFileLoader creates a loader for path.
func NewFileLoader(path string, opts ...FileOption) *FileLoader {
	l := &FileLoader{
		fs:       DefaultFS(),
		path:     path,
		maxDepth: DefaultMaxIncludeDepth,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the file the loader reads.
func (l *FileLoader) Path() string {
	return l.path
}

// Load implements Loader. A missing top-level file is not an error; a
// missing include is.
func (l *FileLoader) Load() (map[string]any, error) {
	return l.load(l.path, l.maxDepth, true)
}

func (l *FileLoader) load(path string, depth int, top bool) (map[string]any, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepthExceeded, path)
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if top && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	config, err := format.Decode(path, data)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = make(map[string]any)
	}

	raw, ok := config[IncludeKey]
	if !ok {
		return config, nil
	}
	delete(config, IncludeKey)

	includes, err := includeList(raw)
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error()}
	}

	base := make(map[string]any)
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(path), inc)
		}
		m, err := l.load(inc, depth-1, false)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", inc, err)
		}
		base = DeepMerge(base, m)
	}
	return DeepMerge(base, config), nil
}

func includeList(v any) ([]string, error) {
	switch v := v.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s entries must be strings, got %T", IncludeKey, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a string or a list of strings, got %T", IncludeKey, v)
	}
}

// ParseError reports a source that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	default:
		return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge merges src into dst and returns dst. Nested maps merge
// recursively; any other src value replaces the dst value.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, sv := range src {
		sm, srcIsMap := sv.(map[string]any)
		dm, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[k] = DeepMerge(dm, sm)
			continue
		}
		if srcIsMap {
			dst[k] = DeepMerge(nil, sm)
			continue
		}
		dst[k] = sv
	}
	return dst
}

// Merge combines the results of loaders in order; later loaders win.
func Merge(loaders ...Loader) (map[string]any, error) {
	out := make(map[string]any)
	for _, l := range loaders {
		m, err := l.Load()
		if err != nil {
			return nil, err
		}
		out = DeepMerge(out, m)
	}
	return out, nil
}

// Get returns the value at a dot-separated path.
func Get(m map[string]any, path string) (any, bool) {
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = mm[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set stores value at a dot-separated path, creating maps as needed.
func Set(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}
