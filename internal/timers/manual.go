package timers

import (
	"sort"
	"time"
)

// ManualClock is a deterministic Clock for tests. Callbacks run synchronously
// inside Advance, in deadline order.
type ManualClock struct {
	now     time.Time
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	at   time.Time
	seq  int
	fn   func()
	done bool
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	return c.now
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Handle {
	c.seq++
	t := &manualTimer{at: c.now.Add(d), seq: c.seq, fn: f}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves the clock forward by d, firing every callback that comes due.
// Callbacks scheduled while advancing fire too if they fall inside the window.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		next := c.next(target)
		if next == nil {
			break
		}
		c.now = next.at
		next.done = true
		next.fn()
	}
	c.now = target
}

// Pending reports how many callbacks are armed and not yet fired or stopped.
func (c *ManualClock) Pending() int {
	n := 0
	for _, t := range c.pending {
		if !t.done {
			n++
		}
	}
	return n
}

func (c *ManualClock) next(target time.Time) *manualTimer {
	live := c.pending[:0]
	for _, t := range c.pending {
		if !t.done {
			live = append(live, t)
		}
	}
	c.pending = live
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at.Equal(c.pending[j].at) {
			return c.pending[i].seq < c.pending[j].seq
		}
		return c.pending[i].at.Before(c.pending[j].at)
	})
	if len(c.pending) == 0 || c.pending[0].at.After(target) {
		return nil
	}
	return c.pending[0]
}
