// Package debounce coalesces rapid triggers into a single delayed
// callback and lets late results of superseded triggers be discarded.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays work until its input has been quiet for a fixed
// interval. Every Trigger cancels the pending timer and starts a new
// one; only the timer that survives the full delay fires.
//
// Each trigger is numbered with a monotonically increasing sequence.
// Callbacks receive their sequence and should check Superseded before
// applying an asynchronously produced result, so a slow query started
// by an older trigger never overwrites a newer one.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	seq   uint64
}

// New creates a debouncer with the given quiet interval.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet interval, cancelling any
// previously scheduled callback that has not fired yet.
func (d *Debouncer) Trigger(fn func(seq uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() { fn(seq) })
	return seq
}

// Superseded reports whether a newer trigger has been issued since seq.
func (d *Debouncer) Superseded(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return seq < d.seq
}

// Stop cancels any pending callback and supersedes callbacks that have
// already fired, so a slow query started by the last trigger cannot
// apply its result after the input was cleared. Further triggers remain
// valid.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}
