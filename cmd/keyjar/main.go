// Package main is the entry point for the keyjar terminal editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dshills/keyjar/internal/config"
	"github.com/dshills/keyjar/internal/config/watcher"
	"github.com/dshills/keyjar/internal/editor"
	"github.com/dshills/keyjar/internal/highlight"
	"github.com/dshills/keyjar/internal/logging"
	"github.com/dshills/keyjar/internal/plugin"
	"github.com/dshills/keyjar/internal/plugin/lua"
	"github.com/dshills/keyjar/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logFile    string
	logLevel   string
	highlight  string
	luaScript  string
	theme      string
	legacy     bool
	noWatch    bool
	dump       bool
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	settings, err := config.Load(config.WithFile(opts.configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	applyFlags(&settings, opts)
	if opts.dump {
		data, err := settings.JSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	log, closeLog, err := setupLogging(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hl, language, closeHL, err := buildHighlighter(ctx, settings, opts.file, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeHL()

	editorOpts, err := settings.EditorOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		return 1
	}

	text, err := readFile(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cfg := term.Config{
		SessionConfig: term.SessionConfig{
			Text:            text,
			Filename:        opts.file,
			Language:        language,
			Highlighter:     hl,
			Options:         editorOpts,
			HistoryCapacity: settings.History.Capacity,
			Theme:           term.ChromaTheme(opts.theme),
			Legacy:          opts.legacy,
			Logger:          log,
		},
	}
	if opts.file != "" {
		cfg.Save = func(text string) error { return writeFile(opts.file, text) }
	}
	if !opts.noWatch && opts.configPath != "" {
		w, err := watchConfig(opts.configPath, log)
		if err != nil {
			log.Warn("config watch disabled: %v", err)
		} else {
			cfg.Watcher = w
			cfg.Reload = func() ([]editor.Option, error) {
				s, err := config.Load(config.WithFile(opts.configPath))
				if err != nil {
					return nil, err
				}
				applyFlags(&s, opts)
				return s.EditorOptions()
			}
		}
	}

	final, err := term.Run(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.file == "" {
		fmt.Print(final)
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", defaultConfigPath(), "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logFile, "log", "", "Write logs to this file")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.highlight, "highlight", "", "Highlighter: none, auto, rules:<lang>, chroma:<lexer> or plugin:<name>")
	flag.StringVar(&opts.luaScript, "lua", "", "Lua highlighter script")
	flag.StringVar(&opts.theme, "theme", term.DefaultTheme, "Chroma style used for colors")
	flag.BoolVar(&opts.legacy, "legacy", false, "Emulate a host without plaintext-only editing")
	flag.BoolVar(&opts.noWatch, "no-watch", false, "Do not reload the config file on change")
	flag.BoolVar(&opts.dump, "dump-config", false, "Print the effective settings as JSON and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keyjar - a small code editor for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keyjar [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keyjar                          Edit a scratch buffer, print it on exit\n")
		fmt.Fprintf(os.Stderr, "  keyjar main.go                  Edit a file\n")
		fmt.Fprintf(os.Stderr, "  keyjar -highlight chroma:go x   Highlight with chroma's Go lexer\n")
		fmt.Fprintf(os.Stderr, "  keyjar -lua ini.lua app.ini     Highlight with a Lua script\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keyjar %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.file = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: keyjar edits one file at a time\n")
		os.Exit(1)
	}
	return opts
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keyjar", "config.toml")
}

// applyFlags lets command line flags override loaded settings.
func applyFlags(s *config.Settings, opts options) {
	if opts.logFile != "" {
		s.Logging.File = opts.logFile
	}
	if opts.logLevel != "" {
		s.Logging.Level = opts.logLevel
	}
	if opts.highlight != "" {
		s.Highlight.Name = opts.highlight
	}
	if opts.luaScript != "" {
		s.Highlight.Script = opts.luaScript
	}
}

// setupLogging writes logs to the configured file. The terminal is owned by
// the editor, so without a file logs are discarded.
func setupLogging(s config.Settings) (*logging.Logger, func(), error) {
	out := io.Discard
	closeFn := func() {}
	if s.Logging.File != "" {
		f, err := os.OpenFile(s.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	log := logging.New(logging.Config{
		Level:  s.LogLevel(),
		Output: out,
		Prefix: "keyjar",
	})
	logging.SetDefault(log)
	return log, closeFn, nil
}

// buildHighlighter resolves the configured highlighter and the label shown
// in the status line.
func buildHighlighter(ctx context.Context, s config.Settings, filename string, log *logging.Logger) (editor.Highlighter, string, func(), error) {
	noop := func() {}

	if s.Highlight.Script != "" {
		h, err := lua.LoadHighlighter(ctx, s.Highlight.Script)
		if err != nil {
			return nil, "", noop, fmt.Errorf("load lua highlighter: %w", err)
		}
		return highlight.New(h), h.Language(), func() { _ = h.Close() }, nil
	}

	if lang, ok := strings.CutPrefix(s.Highlight.Name, "plugin:"); ok {
		info, err := discoverPlugins(log).ForLanguage(lang)
		if err != nil {
			return nil, "", noop, err
		}
		return openPlugin(ctx, info)
	}

	if strings.EqualFold(s.Highlight.Name, "auto") {
		if filename == "" {
			return highlight.New(highlight.Plain), "", noop, nil
		}
		if info, err := discoverPlugins(log).ForFile(filename); err == nil {
			return openPlugin(ctx, info)
		}
		c := highlight.NewChromaForFile(filename)
		return highlight.New(c), c.Language(), noop, nil
	}

	h, err := highlight.ByName(s.Highlight.Name)
	if err != nil {
		return nil, "", noop, err
	}
	var language string
	if l, ok := h.Tokenizer().(interface{ Language() string }); ok {
		language = l.Language()
	}
	return h, language, noop, nil
}

func discoverPlugins(log *logging.Logger) *plugin.Loader {
	l := plugin.NewLoader(plugin.WithLogger(log))
	if _, err := l.Discover(); err != nil {
		log.Warn("plugin discovery: %v", err)
	}
	return l
}

func openPlugin(ctx context.Context, info *plugin.Info) (editor.Highlighter, string, func(), error) {
	h, err := plugin.Open(ctx, info)
	if err != nil {
		return nil, "", func() {}, err
	}
	return highlight.New(h), h.Language(), func() { _ = h.Close() }, nil
}

func watchConfig(path string, log *logging.Logger) (*watcher.Watcher, error) {
	w, err := watcher.New(watcher.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// readFile returns the content of path. A missing file starts empty.
func readFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// writeFile replaces path, keeping its permissions when it exists.
func writeFile(path, text string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
