package core

import "time"

// Clock is a monotonic time source. Now returns the time elapsed since an
// arbitrary origin fixed when the clock was created.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock creates a clock whose origin is the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock only moves when told to. Tests and the fixed-step simulation
// use it to make every time-based rule exact.
type ManualClock struct {
	now time.Duration
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Duration) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d. Negative values are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// Set jumps the clock to t. Moving backwards is ignored to keep it monotonic.
func (c *ManualClock) Set(t time.Duration) {
	if t > c.now {
		c.now = t
	}
}

// Timer is a cancellable one-shot deadline. It holds no goroutine; the owner
// polls Fire from its tick handler, so firing and cancelling never race.
type Timer struct {
	deadline time.Duration
	armed    bool
}

// Arm schedules the timer to fire d after now, replacing any pending deadline.
func (t *Timer) Arm(now, d time.Duration) {
	t.deadline = now + d
	t.armed = true
}

// Cancel disarms the timer. Cancelling an idle timer is a no-op.
func (t *Timer) Cancel() {
	t.armed = false
}

// Pending reports whether the timer is armed and has not fired yet.
func (t *Timer) Pending() bool {
	return t.armed
}

// Deadline returns the armed deadline; meaningless when not pending.
func (t *Timer) Deadline() time.Duration {
	return t.deadline
}

// Remaining returns the time left until the deadline, or 0.
func (t *Timer) Remaining(now time.Duration) time.Duration {
	if !t.armed || now >= t.deadline {
		return 0
	}
	return t.deadline - now
}

// Fire returns true exactly once, on the first call at or after the deadline.
func (t *Timer) Fire(now time.Duration) bool {
	if !t.armed || now < t.deadline {
		return false
	}
	t.armed = false
	return true
}
