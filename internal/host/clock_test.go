package host

import (
	"reflect"
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock()
	var got []string
	c.AfterFunc(30*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "c") })

	c.Advance(9 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("ran early: %v", got)
	}
	c.Advance(25 * time.Millisecond)
	if !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Errorf("order = %v", got)
	}
	if c.Now() != 34*time.Millisecond {
		t.Errorf("Now() = %v", c.Now())
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d", c.Pending())
	}
}

func TestClockStop(t *testing.T) {
	c := NewClock()
	ran := false
	stop := c.AfterFunc(time.Second, func() { ran = true })
	if c.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", c.Pending())
	}
	if !stop() {
		t.Error("stop() should succeed for a pending timer")
	}
	if stop() {
		t.Error("stop() twice should fail")
	}
	c.Advance(2 * time.Second)
	if ran {
		t.Error("stopped timer ran")
	}

	stop = c.AfterFunc(time.Millisecond, func() {})
	c.Advance(time.Millisecond)
	if stop() {
		t.Error("stop() after firing should fail")
	}
}

func TestClockNestedTimers(t *testing.T) {
	c := NewClock()
	var got []time.Duration
	c.AfterFunc(10*time.Millisecond, func() {
		got = append(got, c.Now())
		c.AfterFunc(10*time.Millisecond, func() { got = append(got, c.Now()) })
		c.AfterFunc(time.Second, func() { got = append(got, c.Now()) })
	})

	c.Advance(50 * time.Millisecond)
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fired at %v, want %v", got, want)
	}
	if c.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", c.Pending())
	}
}
