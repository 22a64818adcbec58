package timers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRegistryFiresOnce(t *testing.T) {
	clock := NewManualClock(epoch)
	reg := NewRegistry[string](clock)
	fired := 0

	reg.Start("ROOM", time.Second, func() { fired++ })
	assert.True(t, reg.Pending("ROOM"))

	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, 0, fired)
	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.False(t, reg.Pending("ROOM"))

	clock.Advance(time.Hour)
	assert.Equal(t, 1, fired)
}

func TestRegistryStartReplacesPending(t *testing.T) {
	clock := NewManualClock(epoch)
	reg := NewRegistry[string](clock)
	var got []string

	reg.Start("ROOM", time.Second, func() { got = append(got, "first") })
	reg.Start("ROOM", 2*time.Second, func() { got = append(got, "second") })
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(5 * time.Second)
	assert.Equal(t, []string{"second"}, got)
}

func TestRegistryClear(t *testing.T) {
	clock := NewManualClock(epoch)
	reg := NewRegistry[string](clock)
	fired := false

	reg.Clear("nothing")

	reg.Start("ROOM", time.Second, func() { fired = true })
	reg.Clear("ROOM")
	reg.Clear("ROOM")
	clock.Advance(time.Minute)
	assert.False(t, fired)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryKeysAreIndependent(t *testing.T) {
	clock := NewManualClock(epoch)
	reg := NewRegistry[string](clock)
	fired := map[string]int{}

	reg.Start("A", time.Second, func() { fired["A"]++ })
	reg.Start("B", time.Second, func() { fired["B"]++ })
	reg.Clear("A")
	clock.Advance(time.Second)

	assert.Equal(t, map[string]int{"B": 1}, fired)
}

// staleClock delivers callbacks even after Stop, like a time.Timer whose
// func was already dispatched when Stop was called.
type staleClock struct {
	fns []func()
}

type noopHandle struct{}

func (noopHandle) Stop() bool { return false }

func (c *staleClock) Now() time.Time { return epoch }

func (c *staleClock) AfterFunc(d time.Duration, f func()) Handle {
	c.fns = append(c.fns, f)
	return noopHandle{}
}

func TestRegistryDropsStaleDelivery(t *testing.T) {
	clock := &staleClock{}
	reg := NewRegistry[string](clock)
	var got []string

	reg.Start("ROOM", time.Second, func() { got = append(got, "old") })
	reg.Start("ROOM", time.Second, func() { got = append(got, "new") })

	for _, fn := range clock.fns {
		fn()
	}
	assert.Equal(t, []string{"new"}, got)
}

func TestRegistryCallbackCanRearm(t *testing.T) {
	clock := NewManualClock(epoch)
	reg := NewRegistry[string](clock)
	var got []string

	reg.Start("ROOM", time.Second, func() {
		got = append(got, "timer")
		reg.Start("ROOM", 500*time.Millisecond, func() { got = append(got, "grace") })
	})

	clock.Advance(time.Second)
	assert.Equal(t, []string{"timer"}, got)
	assert.True(t, reg.Pending("ROOM"))
	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, []string{"timer", "grace"}, got)
}

func TestRealClockPostsCallback(t *testing.T) {
	posted := make(chan func(), 1)
	clock := NewRealClock(func(f func()) { posted <- f })
	ran := false

	clock.AfterFunc(time.Millisecond, func() { ran = true })
	select {
	case f := <-posted:
		assert.False(t, ran)
		f()
		assert.True(t, ran)
	case <-time.After(time.Second):
		assert.Fail(t, "callback was not posted")
	}
}
