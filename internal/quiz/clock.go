package quiz

// Clock counts whole seconds up from zero.
type Clock struct {
	elapsed int
}

// Tick advances the clock by one second.
func (c *Clock) Tick() { c.elapsed++ }

// Seconds returns the elapsed seconds.
func (c *Clock) Seconds() int { return c.elapsed }

// Countdown counts whole seconds down from a limit to zero.
type Countdown struct {
	limit     int
	remaining int
	fired     bool
}

// Reset restarts the countdown at limit and re-arms expiry.
func (c *Countdown) Reset(limit int) {
	if limit < 0 {
		limit = 0
	}
	c.limit = limit
	c.remaining = limit
	c.fired = false
}

// Tick decrements the countdown. It reports true exactly once, on the tick
// that reaches zero.
func (c *Countdown) Tick() bool {
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 && !c.fired {
		c.fired = true
		return true
	}
	return false
}

// Remaining returns the seconds left, always within [0, Limit()].
func (c *Countdown) Remaining() int { return c.remaining }

// Limit returns the value of the last reset.
func (c *Countdown) Limit() int { return c.limit }

// Used returns limit minus remaining, never negative.
func (c *Countdown) Used() int {
	if used := c.limit - c.remaining; used > 0 {
		return used
	}
	return 0
}
