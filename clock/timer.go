package clock

import "time"

// Timer records the start and optional end of a run.
type Timer struct {
	clock Clock
	start time.Time
	end   time.Time
}

// NewTimer creates a stopped timer. A nil clock uses the system clock.
func NewTimer(c Clock) *Timer {
	if c == nil {
		c = Real{}
	}
	return &Timer{clock: c}
}

// Start records the start instant.
func (t *Timer) Start() {
	t.start = t.clock.Now()
	t.end = time.Time{}
}

// Started reports whether Start has been called.
func (t *Timer) Started() bool {
	return !t.start.IsZero()
}

// Stop records the end instant and returns the total duration.
func (t *Timer) Stop() time.Duration {
	t.end = t.clock.Now()
	return t.Elapsed()
}

// Elapsed returns the duration since start, or until end once stopped.
// It is zero when the timer was never started.
func (t *Timer) Elapsed() time.Duration {
	if !t.Started() {
		return 0
	}
	end := t.end
	if end.IsZero() {
		end = t.clock.Now()
	}
	if d := end.Sub(t.start); d > 0 {
		return d
	}
	return 0
}
