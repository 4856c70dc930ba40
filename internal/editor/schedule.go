package editor

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler runs f after d on the goroutine that owns the editor.
// The returned stop function prevents f from running and reports whether
// it did so.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// Timer states
const (
	timerPending int32 = iota
	timerStopped
	timerFired
)

// Loop is a Scheduler for hosts with their own event loop. Timers fire on
// runtime goroutines and only queue their callback; the host runs queued
// callbacks with RunPending when Wake signals.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, f func()) (stop func() bool) {
	var state atomic.Int32
	t := time.AfterFunc(d, func() {
		l.Post(func() {
			if state.CompareAndSwap(timerPending, timerFired) {
				f()
			}
		})
	})
	return func() bool {
		t.Stop()
		return state.CompareAndSwap(timerPending, timerStopped)
	}
}

// Post queues f to run on the next RunPending. It is safe to call from any
// goroutine.
func (l *Loop) Post(f func()) {
	l.mu.Lock()
	l.pending = append(l.pending, f)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Wake receives a value whenever callbacks are queued.
func (l *Loop) Wake() <-chan struct{} {
	return l.wake
}

// RunPending runs every queued callback in order and returns how many ran.
// Callbacks queued while running are left for the next call.
func (l *Loop) RunPending() int {
	l.mu.Lock()
	fs := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, f := range fs {
		f()
	}
	return len(fs)
}

// Len returns the number of queued callbacks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}
