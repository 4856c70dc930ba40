package term

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/net/html"

	"github.com/dshills/keyjar/internal/dom"
	"github.com/dshills/keyjar/internal/editor"
	"github.com/dshills/keyjar/internal/host"
	"github.com/dshills/keyjar/internal/input/key"
	"github.com/dshills/keyjar/internal/logging"
)

// Session errors.
var (
	ErrNoScreen = errors.New("no screen")
)

// SessionConfig holds the collaborators of a Session.
type SessionConfig struct {
	// Screen must be initialized by the caller.
	Screen tcell.Screen

	// Text is the initial content.
	Text string

	// Filename is shown in the status line.
	Filename string

	// Language is shown in the status line.
	Language string

	Highlighter editor.Highlighter
	Scheduler   editor.Scheduler
	Options     []editor.Option

	// HistoryCapacity defaults to the editor's default.
	HistoryCapacity int

	// Clipboard defaults to DefaultClipboard().
	Clipboard Clipboard

	// Save writes the text. Ctrl+S reports an error when it is nil.
	Save func(text string) error

	Theme    Theme
	TabWidth int

	// Legacy runs the region without plaintext-only support.
	Legacy bool

	Logger *logging.Logger
}

// Session is one editor attached to a terminal screen.
type Session struct {
	screen  tcell.Screen
	doc     *dom.Document
	root    *html.Node
	ed      *editor.Editor
	browser *host.Browser
	clip    Clipboard
	save    func(string) error
	log     *logging.Logger

	view     view
	name     string
	language string
	saved    string
	message  string

	pasting bool
	paste   []rune
}

// NewSession creates the region, attaches an editor and focuses it with the
// caret at the start.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Screen == nil {
		return nil, ErrNoScreen
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = DefaultClipboard()
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = DefaultTabWidth
	}
	if cfg.Theme.Classes == nil {
		cfg.Theme = PlainTheme()
	}

	doc := dom.NewDocument(dom.WithPlaintextOnly(!cfg.Legacy))
	root := dom.NewElement("div")
	doc.SetTextContent(root, cfg.Text)

	ed, err := editor.New(editor.Config{
		Document:        doc,
		Root:            root,
		Highlighter:     cfg.Highlighter,
		Scheduler:       cfg.Scheduler,
		Logger:          cfg.Logger,
		HistoryCapacity: cfg.HistoryCapacity,
	}, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("attach editor: %w", err)
	}

	s := &Session{
		screen:   cfg.Screen,
		doc:      doc,
		root:     root,
		ed:       ed,
		browser:  host.NewBrowser(doc, root),
		clip:     cfg.Clipboard,
		save:     cfg.Save,
		log:      cfg.Logger.WithComponent("term"),
		view:     view{theme: cfg.Theme, tabWidth: cfg.TabWidth},
		name:     cfg.Filename,
		language: cfg.Language,
		saved:    ed.String(),
	}

	if err := s.browser.Focus(); err != nil {
		s.log.Warn("focus: %v", err)
	}
	s.browser.SetCaret(0)
	return s, nil
}

// Editor returns the attached editor.
func (s *Session) Editor() *editor.Editor {
	return s.ed
}

// Browser returns the input driver of the region.
func (s *Session) Browser() *host.Browser {
	return s.browser
}

// Text returns the current content.
func (s *Session) Text() string {
	return s.ed.String()
}

// Modified reports whether the text differs from the last save.
func (s *Session) Modified() bool {
	return s.Text() != s.saved
}

// SetMessage shows msg in the status line until the next key.
func (s *Session) SetMessage(msg string) {
	s.message = msg
}

// HandleEvent applies a terminal event and reports whether the session
// should end.
func (s *Session) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
	case *tcell.EventPaste:
		if ev.Start() {
			s.pasting = true
			s.paste = s.paste[:0]
			return false
		}
		s.pasting = false
		s.report(s.browser.Paste(string(s.paste)))
	case *tcell.EventKey:
		if s.pasting {
			s.bufferPaste(ev)
			return false
		}
		k, ok := convertKey(ev)
		if !ok {
			return false
		}
		s.message = ""
		return s.handleKey(k)
	}
	return false
}

func (s *Session) bufferPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		s.paste = append(s.paste, ev.Rune())
	case tcell.KeyEnter:
		s.paste = append(s.paste, '\n')
	case tcell.KeyTab:
		s.paste = append(s.paste, '\t')
	}
}

func ctrl(r rune) key.Binding {
	return key.Binding{Key: key.KeyRune, Rune: r, Command: true}
}

var (
	quitKey  = ctrl('q')
	saveKey  = ctrl('s')
	copyKey  = ctrl('c')
	cutKey   = ctrl('x')
	pasteKey = ctrl('v')
	redoKey  = ctrl('y')
)

func (s *Session) handleKey(k key.Event) (quit bool) {
	switch {
	case quitKey.Matches(k):
		return true
	case saveKey.Matches(k):
		s.doSave()
	case copyKey.Matches(k):
		text, err := s.browser.Copy()
		s.report(err)
		s.report(s.clip.WriteAll(text))
	case cutKey.Matches(k):
		text, err := s.browser.Cut()
		s.report(err)
		s.report(s.clip.WriteAll(text))
	case pasteKey.Matches(k):
		text, err := s.clip.ReadAll()
		if err != nil {
			s.report(err)
			return false
		}
		s.report(s.browser.Paste(text))
	case redoKey.Matches(k):
		s.report(s.ed.Redo())
	default:
		s.report(s.browser.Key(k))
	}
	return false
}

func (s *Session) doSave() {
	if s.save == nil {
		s.message = "no file to save to"
		return
	}
	text := s.Text()
	if err := s.save(text); err != nil {
		s.log.Error("save %s: %v", s.name, err)
		s.message = "save failed: " + err.Error()
		return
	}
	s.saved = text
	s.message = "saved"
}

// report logs err and shows it in the status line.
func (s *Session) report(err error) {
	if err == nil {
		return
	}
	s.log.Warn("%v", err)
	s.message = err.Error()
}

// Draw repaints the screen.
func (s *Session) Draw() {
	pos, err := s.browser.Position()
	s.view.draw(s.screen, s.root, pos, err == nil, status{
		name:     s.name,
		modified: s.Modified(),
		language: s.language,
		message:  s.message,
	})
	s.screen.Show()
}

// Close detaches the editor.
func (s *Session) Close() {
	s.ed.Destroy()
}
