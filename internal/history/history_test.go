package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dshills/keyjar/internal/caret"
)

func rec(content string, offset int) Record {
	return Record{Content: content, Position: caret.Collapsed(offset)}
}

func TestNewHistory(t *testing.T) {
	h := New(0)
	if h.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", h.Capacity(), DefaultCapacity)
	}
	if h.At() != -1 || h.Len() != 0 {
		t.Errorf("new history at=%d len=%d, want -1 and 0", h.At(), h.Len())
	}
	if _, ok := h.Current(); ok {
		t.Error("empty history should have no current record")
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("empty history cannot undo or redo")
	}
}

func TestPushSkipsIdentical(t *testing.T) {
	h := New(10)
	if !h.Push(rec("a", 1)) {
		t.Fatal("first push should be added")
	}
	if h.Push(rec("a", 1)) {
		t.Error("identical push should be skipped")
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}

	// Same range in the other direction is the same record.
	if h.Push(Record{Content: "a", Position: caret.Position{Start: 1, End: 1, Dir: caret.DirBackward}}) {
		t.Error("direction alone should not make a record distinct")
	}
	if !h.Push(rec("a", 0)) {
		t.Error("moved caret should be recorded")
	}
	if !h.Push(rec("b", 0)) {
		t.Error("changed content should be recorded")
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
}

func TestUndoRedo(t *testing.T) {
	h := New(10)
	h.Push(rec("", 0))
	h.Push(rec("a", 1))
	h.Push(rec("ab", 2))

	r, err := h.Undo()
	if err != nil || r.Content != "a" {
		t.Fatalf("Undo() = %q, %v; want %q", r.Content, err, "a")
	}
	r, err = h.Undo()
	if err != nil || r.Content != "" {
		t.Fatalf("Undo() = %q, %v; want empty", r.Content, err)
	}
	if _, err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() at first record error = %v, want ErrNothingToUndo", err)
	}
	if h.At() != 0 {
		t.Errorf("At() = %d, want 0", h.At())
	}

	r, err = h.Redo()
	if err != nil || r.Content != "a" {
		t.Fatalf("Redo() = %q, %v; want %q", r.Content, err, "a")
	}
	r, _ = h.Redo()
	if r.Content != "ab" {
		t.Errorf("Redo() = %q, want %q", r.Content, "ab")
	}
	if _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() at tail error = %v, want ErrNothingToRedo", err)
	}
}

func TestUndoRedoInverse(t *testing.T) {
	h := New(10)
	for i := 0; i < 5; i++ {
		h.Push(rec(fmt.Sprint(i), i))
	}
	h.Undo()
	h.Undo()

	before, _ := h.Current()
	if _, err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	after, err := h.Redo()
	if err != nil {
		t.Fatal(err)
	}
	if after.Content != before.Content || after.Position != before.Position {
		t.Errorf("undo then redo = %+v, want %+v", after, before)
	}
}

func TestPushTruncatesForward(t *testing.T) {
	h := New(10)
	h.Push(rec("a", 0))
	h.Push(rec("b", 0))
	h.Push(rec("c", 0))
	h.Undo()
	h.Undo()

	h.Push(rec("x", 0))
	if h.Len() != 2 || h.At() != 1 {
		t.Fatalf("len=%d at=%d, want 2 and 1", h.Len(), h.At())
	}
	if h.CanRedo() {
		t.Error("forward records should be discarded")
	}
	r, _ := h.Undo()
	if r.Content != "a" {
		t.Errorf("Undo() = %q, want %q", r.Content, "a")
	}
}

func TestCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pushes   int
	}{
		{"under", 5, 3},
		{"exact", 5, 5},
		{"over", 5, 12},
		{"default", 0, 310},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(tt.capacity)
			for i := 0; i < tt.pushes; i++ {
				h.Push(rec(fmt.Sprint(i), i))
			}

			want := min(tt.pushes, h.Capacity())
			if h.Len() != want {
				t.Fatalf("Len() = %d, want %d", h.Len(), want)
			}
			if h.At() != want-1 {
				t.Errorf("At() = %d, want %d", h.At(), want-1)
			}
			cur, _ := h.Current()
			if cur.Content != fmt.Sprint(tt.pushes-1) {
				t.Errorf("Current() = %q, want newest record", cur.Content)
			}

			undos := 0
			for {
				if _, err := h.Undo(); err != nil {
					break
				}
				undos++
			}
			if undos != want-1 {
				t.Errorf("undo steps = %d, want %d", undos, want-1)
			}
			oldest, _ := h.Current()
			if oldest.Content != fmt.Sprint(tt.pushes-want) {
				t.Errorf("oldest record = %q, want %q", oldest.Content, fmt.Sprint(tt.pushes-want))
			}
		})
	}
}

func TestClear(t *testing.T) {
	h := New(3)
	h.Push(rec("a", 0))
	h.Clear()
	if h.Len() != 0 || h.At() != -1 {
		t.Errorf("after Clear len=%d at=%d", h.Len(), h.At())
	}
}

func TestPushStampsTime(t *testing.T) {
	h := New(3)
	h.Push(rec("a", 0))
	r, _ := h.Current()
	if r.Time.IsZero() {
		t.Error("Push should stamp the record time")
	}
}
