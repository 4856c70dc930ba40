package host

import (
	"sort"
	"time"
)

// Clock is a manually advanced scheduler. It is not safe for concurrent
// use.
type Clock struct {
	now    time.Duration
	seq    int
	timers []*clockTimer
}

type clockTimer struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
}

// NewClock creates a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// AfterFunc schedules f to run once the clock has advanced by d.
func (c *Clock) AfterFunc(d time.Duration, f func()) (stop func() bool) {
	c.seq++
	t := &clockTimer{at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return func() bool {
		if t.stopped {
			return false
		}
		t.stopped = true
		return c.remove(t)
	}
}

func (c *Clock) remove(t *clockTimer) bool {
	for i, other := range c.timers {
		if other == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d, running due timers in order.
// Timers scheduled by callbacks run too if they fall due within d.
func (c *Clock) Advance(d time.Duration) {
	end := c.now + d
	for {
		t := c.next()
		if t == nil || t.at > end {
			break
		}
		c.remove(t)
		t.stopped = true
		c.now = t.at
		t.f()
	}
	c.now = end
}

// next returns the earliest pending timer.
func (c *Clock) next() *clockTimer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at != c.timers[j].at {
			return c.timers[i].at < c.timers[j].at
		}
		return c.timers[i].seq < c.timers[j].seq
	})
	return c.timers[0]
}

// Pending returns the number of timers that have not run or been stopped.
func (c *Clock) Pending() int {
	return len(c.timers)
}

// Now returns the time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}
