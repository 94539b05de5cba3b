// Package timer provides the monotonic elapsed-time source the frame loop
// is driven by.
package timer

import "time"

// Timer measures elapsed time between consecutive Tick calls.
type Timer struct {
	now  func() time.Time
	last time.Time
}

func New() *Timer {
	return NewWithClock(time.Now)
}

// NewWithClock builds a timer on an injected clock. Tests use this to make
// elapsed time deterministic.
func NewWithClock(now func() time.Time) *Timer {
	return &Timer{now: now, last: now()}
}

// Tick returns the seconds elapsed since the previous Tick (or since
// construction for the first call) and resets the baseline.
func (t *Timer) Tick() float64 {
	n := t.now()
	dt := n.Sub(t.last).Seconds()
	t.last = n
	return dt
}
