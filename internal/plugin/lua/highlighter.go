package lua

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyjar/internal/highlight"
	"github.com/dshills/keyjar/internal/logging"
)

// HighlightFunc is the global a script must define.
const HighlightFunc = "highlight"

// Highlighter is a highlight.Tokenizer backed by a Lua script.
type Highlighter struct {
	state *State
	name  string
	log   *logging.Logger
}

// NewHighlighter runs script in a fresh state and checks that it defines
// highlight. name identifies the script in errors and logs.
func NewHighlighter(ctx context.Context, name, script string, opts ...StateOption) (*Highlighter, error) {
	s := NewState(opts...)
	if err := s.DoString(ctx, script); err != nil {
		s.Close()
		return nil, fmt.Errorf("lua: %s: %w", name, err)
	}
	return newHighlighter(s, name)
}

// LoadHighlighter runs the script file at path.
func LoadHighlighter(ctx context.Context, path string, opts ...StateOption) (*Highlighter, error) {
	s := NewState(opts...)
	if err := s.DoFile(ctx, path); err != nil {
		s.Close()
		return nil, fmt.Errorf("lua: %s: %w", path, err)
	}
	return newHighlighter(s, path)
}

func newHighlighter(s *State, name string) (*Highlighter, error) {
	if !s.HasFunction(HighlightFunc) {
		s.Close()
		return nil, fmt.Errorf("lua: %s: %w: %q", name, ErrNoFunction, HighlightFunc)
	}
	return &Highlighter{
		state: s,
		name:  name,
		log:   logging.Default().WithComponent("lua").WithField("script", name),
	}, nil
}

// Language returns the script name.
func (h *Highlighter) Language() string {
	return "lua:" + h.name
}

// Tokenize implements highlight.Tokenizer.
func (h *Highlighter) Tokenize(text string) ([]highlight.Span, error) {
	results, err := h.state.Call(context.Background(), HighlightFunc, lua.LString(text))
	if err != nil {
		h.log.Warn("highlight failed: %v", err)
		return nil, fmt.Errorf("lua: %s: %w", h.name, err)
	}
	if len(results) == 0 || results[0] == lua.LNil {
		return nil, nil
	}
	tbl, ok := results[0].(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("lua: %s: %w: got %s", h.name, ErrInvalidResult, results[0].Type())
	}
	return toSpans(text, tbl)
}

// Close releases the script's state.
func (h *Highlighter) Close() error {
	return h.state.Close()
}

// toSpans converts {start, stop, class} triples with 1-based inclusive byte
// positions into character spans. Positions are clamped to the text;
// ranges that end before they start are dropped.
func toSpans(text string, tbl *lua.LTable) ([]highlight.Span, error) {
	offsets := highlight.RuneOffsets(text)
	n := tbl.Len()
	spans := make([]highlight.Span, 0, n)
	for i := 1; i <= n; i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is not a table", ErrInvalidResult, i)
		}
		start, ok1 := entry.RawGetInt(1).(lua.LNumber)
		stop, ok2 := entry.RawGetInt(2).(lua.LNumber)
		class, ok3 := entry.RawGetInt(3).(lua.LString)
		if !ok1 || !ok2 || !ok3 {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidResult, i)
		}

		from := max(int(start)-1, 0)
		to := min(int(stop), len(text))
		if from >= to {
			continue
		}
		spans = append(spans, highlight.Span{
			Start: offsets[from],
			End:   offsets[to],
			Class: string(class),
		})
	}
	return spans, nil
}
