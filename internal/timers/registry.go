package timers

import "time"

type entry struct {
	gen    uint64
	handle Handle
}

// Registry keeps at most one pending callback per key. It is not safe for
// concurrent use; callers serialize access (the game loop does).
type Registry[K comparable] struct {
	clock   Clock
	entries map[K]*entry
	gen     uint64
}

func NewRegistry[K comparable](clock Clock) *Registry[K] {
	return &Registry[K]{clock: clock, entries: make(map[K]*entry)}
}

// Start clears any pending callback for key and arms a new one.
func (r *Registry[K]) Start(key K, delay time.Duration, callback func()) {
	r.Clear(key)
	r.gen++
	e := &entry{gen: r.gen}
	r.entries[key] = e
	e.handle = r.clock.AfterFunc(delay, func() {
		// A stopped timer may still deliver if it raced with Stop.
		cur, ok := r.entries[key]
		if !ok || cur.gen != e.gen {
			return
		}
		delete(r.entries, key)
		callback()
	})
}

// Clear cancels the pending callback for key, if any.
func (r *Registry[K]) Clear(key K) {
	e, ok := r.entries[key]
	if !ok {
		return
	}
	delete(r.entries, key)
	if e.handle != nil {
		e.handle.Stop()
	}
}

func (r *Registry[K]) Pending(key K) bool {
	_, ok := r.entries[key]
	return ok
}

func (r *Registry[K]) Len() int {
	return len(r.entries)
}
