package editor

import (
	"testing"

	"github.com/dshills/keyjar/internal/input/key"
)

func keyEvent(t *testing.T, spec string) key.Event {
	t.Helper()
	ev, err := key.Parse(spec)
	if err != nil {
		t.Fatalf("Parse(%q): %v", spec, err)
	}
	return ev
}
