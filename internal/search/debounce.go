package search

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is how long typing must pause before a query is committed.
const DefaultDebounceDelay = 300 * time.Millisecond

// Debouncer runs only the last of a burst of calls, once the burst has been
// quiet for the configured duration.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64
	duration time.Duration
}

func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultDebounceDelay
	}
	return &Debouncer{duration: duration}
}

// Debounce schedules fn, replacing any call still waiting. A call whose timer
// already fired but lost the race to a newer Debounce or Cancel is dropped.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		current := gen == d.gen
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a call is waiting to fire.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
