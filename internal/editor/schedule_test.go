package editor

import (
	"testing"
	"time"
)

// waitPending blocks until the loop has n queued callbacks.
func waitPending(t *testing.T, l *Loop, n int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for l.Len() < n {
		select {
		case <-l.Wake():
		case <-deadline:
			t.Fatalf("timed out waiting for %d callbacks, have %d", n, l.Len())
		}
	}
}

func TestLoopRunsOnDrain(t *testing.T) {
	l := NewLoop()
	ran := 0
	l.AfterFunc(time.Millisecond, func() { ran++ })

	waitPending(t, l, 1)
	if ran != 0 {
		t.Fatal("callback ran before RunPending")
	}
	if n := l.RunPending(); n != 1 {
		t.Errorf("RunPending() = %d, want 1", n)
	}
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
}

func TestLoopStop(t *testing.T) {
	l := NewLoop()
	ran := false
	stop := l.AfterFunc(time.Hour, func() { ran = true })
	if !stop() {
		t.Error("stop() should report it prevented the callback")
	}
	if stop() {
		t.Error("second stop() should report false")
	}
	if ran {
		t.Error("stopped callback ran")
	}
}

func TestLoopStopAfterQueue(t *testing.T) {
	l := NewLoop()
	ran := false
	stop := l.AfterFunc(time.Millisecond, func() { ran = true })

	waitPending(t, l, 1)
	if !stop() {
		t.Error("stop() before the queued callback runs should succeed")
	}
	l.RunPending()
	if ran {
		t.Error("callback ran after stop")
	}
}

func TestLoopPostOrder(t *testing.T) {
	l := NewLoop()
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.RunPending()
	if len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("order = %v", got)
	}
}
