package foxscape

import "github.com/vovakirdan/foxscape/internal/core"

// Cooldown tracks how long until the fox may roll again, as a ratio that
// drains from its starting value down to zero.
type Cooldown struct {
	active bool
	ratio  float64
}

// Start begins a cooldown at ratio, replacing any running one.
func (c *Cooldown) Start(ratio float64) {
	c.ratio = core.ClampF(core.Finite(ratio), 0, 1)
	c.active = c.ratio > 0
}

// Active reports whether rolling is blocked.
func (c *Cooldown) Active() bool {
	return c.active
}

// Ratio returns the remaining cooldown in [0, 1].
func (c *Cooldown) Ratio() float64 {
	return c.ratio
}

// Deplete drains the ratio by amount. Reaching zero ends the cooldown.
func (c *Cooldown) Deplete(amount float64) {
	if !c.active {
		return
	}
	c.ratio -= core.Finite(amount)
	if c.ratio <= 0 {
		c.ratio = 0
		c.active = false
	}
}

// Reset clears the cooldown.
func (c *Cooldown) Reset() {
	c.active = false
	c.ratio = 0
}
