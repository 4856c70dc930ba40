package history

import (
	"sync"
	"time"

	"github.com/dshills/keyjar/internal/caret"
)

// DefaultCapacity is the number of records kept when none is configured.
const DefaultCapacity = 300

// Record is one snapshot of the region.
type Record struct {
	// Content is the serialized markup of the region.
	Content string

	// Position is the caret at the time of the snapshot.
	Position caret.Position

	// Time is when the record was pushed.
	Time time.Time
}

// same reports whether r and other would restore to the same state.
func (r Record) same(other Record) bool {
	return r.Content == other.Content &&
		r.Position.Start == other.Position.Start &&
		r.Position.End == other.Position.End
}

// History is a bounded undo/redo log.
type History struct {
	mu sync.Mutex

	records []Record
	at      int

	capacity int
}

// New creates an empty history holding at most capacity records.
// A capacity <= 0 selects DefaultCapacity.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		at:       -1,
		capacity: capacity,
	}
}

// Push appends a record after the pointer and moves the pointer to it.
// Records after the pointer are discarded. A record identical to the
// current one is ignored; Push reports whether the record was added.
func (h *History) Push(r Record) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.at >= 0 && h.records[h.at].same(r) {
		return false
	}
	if r.Time.IsZero() {
		r.Time = time.Now()
	}

	h.at++
	h.records = append(h.records[:h.at], r)

	// Enforce capacity
	if len(h.records) > h.capacity {
		excess := len(h.records) - h.capacity
		h.records = append(h.records[:0], h.records[excess:]...)
		h.at -= excess
	}
	return true
}

// Undo moves the pointer back and returns the record it now points at.
// The first record is never undone past, since it is the initial state.
func (h *History) Undo() (Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.at <= 0 {
		return Record{}, ErrNothingToUndo
	}
	h.at--
	return h.records[h.at], nil
}

// Redo moves the pointer forward and returns the record it now points at.
func (h *History) Redo() (Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.at+1 >= len(h.records) {
		return Record{}, ErrNothingToRedo
	}
	h.at++
	return h.records[h.at], nil
}

// Current returns the record at the pointer.
func (h *History) Current() (Record, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.at < 0 {
		return Record{}, false
	}
	return h.records[h.at], true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.at > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.at+1 < len(h.records)
}

// Len returns the number of records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// At returns the pointer, -1 when the history is empty.
func (h *History) At() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.at
}

// Capacity returns the maximum number of records.
func (h *History) Capacity() int {
	return h.capacity
}

// Clear removes all records.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = nil
	h.at = -1
}
