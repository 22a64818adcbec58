package timers

import "time"

// Handle cancels a scheduled callback.
type Handle interface {
	Stop() bool
}

// Clock schedules deferred callbacks. Implementations decide which goroutine
// runs the callback; the engine expects it to be its own event loop.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Handle
}

type realClock struct {
	post func(func())
}

// NewRealClock returns a wall clock whose callbacks are handed to post
// instead of running on the timer goroutine.
func NewRealClock(post func(func())) Clock {
	return realClock{post: post}
}

func (c realClock) Now() time.Time {
	return time.Now()
}

func (c realClock) AfterFunc(d time.Duration, f func()) Handle {
	return time.AfterFunc(d, func() { c.post(f) })
}
