package reconcile

import (
	"sync"
	"time"
)

// Debouncer gates a function on the leading edge of a burst: the first
// call runs the function immediately and arms a cooldown timer; calls
// arriving during the cooldown are dropped, not queued.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	cooling bool
	fn      func()
}

// NewDebouncer creates a debouncer around fn with the given quiet
// window.
func NewDebouncer(window time.Duration, fn func()) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Call runs the wrapped function if no cooldown is active, then arms
// one. During a cooldown it does nothing.
func (d *Debouncer) Call() {
	d.mu.Lock()
	if d.cooling {
		d.mu.Unlock()
		return
	}
	d.cooling = true
	d.mu.Unlock()

	time.AfterFunc(d.window, func() {
		d.mu.Lock()
		d.cooling = false
		d.mu.Unlock()
	})

	d.fn()
}

// Cooling reports whether a cooldown is currently active.
func (d *Debouncer) Cooling() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cooling
}
