package history

// LatchState is the state of a Latch.
type LatchState uint8

const (
	// Idle means the next qualifying keydown takes a snapshot.
	Idle LatchState = iota
	// Held means a snapshot was taken for the current burst.
	Held
)

// String returns the state name.
func (s LatchState) String() string {
	if s == Held {
		return "held"
	}
	return "idle"
}

// Latch limits keydown snapshots to one per burst of typing.
//
// The first recordable keydown takes a snapshot and holds the latch. The
// debounced settle after the burst releases it, taking the closing
// snapshot.
type Latch struct {
	state LatchState
}

// KeyDown reports whether a snapshot should be taken for this keydown.
func (l *Latch) KeyDown(recordable bool) bool {
	if !recordable || l.state == Held {
		return false
	}
	l.state = Held
	return true
}

// Settle reports whether a snapshot should be taken now that input has
// settled, and releases the latch if so.
func (l *Latch) Settle(recordable bool) bool {
	if !recordable {
		return false
	}
	l.state = Idle
	return true
}

// State returns the current state.
func (l *Latch) State() LatchState {
	return l.state
}

// Reset returns the latch to Idle.
func (l *Latch) Reset() {
	l.state = Idle
}
