package shell

import "time"

// Clock turns wall time into a whole number of fixed simulation steps.
// Leftover time carries over to the next call.
type Clock struct {
	Step   time.Duration
	Paused bool

	last    time.Time
	pending time.Duration
}

func NewClock(step time.Duration) *Clock {
	if step <= 0 {
		step = time.Second / 30
	}
	return &Clock{Step: step}
}

// Due reports how many steps are owed at wall time now. The first call only
// records a reference time. Time that passes while paused is dropped.
func (c *Clock) Due(now time.Time) int {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	delta := now.Sub(c.last)
	c.last = now
	if delta < 0 || c.Paused {
		return 0
	}
	c.pending += delta
	n := int(c.pending / c.Step)
	c.pending -= time.Duration(n) * c.Step
	return n
}

func (c *Clock) Pending() time.Duration {
	return c.pending
}

// Start sets the reference time without stepping.
func (c *Clock) Start(now time.Time) {
	c.last = now
	c.pending = 0
}

func (c *Clock) Toggle() bool {
	c.Paused = !c.Paused
	return c.Paused
}
