package config

import "math"

// DifficultyRamp is the global speed multiplier of a run. It starts at
// cfg.Start, grows by cfg.Increment every tick and stops at cfg.Ceiling.
// When disabled it stays at its starting value.
type DifficultyRamp struct {
	cfg  RampConfig
	rate float64
}

// NewDifficultyRamp creates a ramp at its starting value.
func NewDifficultyRamp(cfg RampConfig) *DifficultyRamp {
	d := &DifficultyRamp{cfg: cfg}
	d.Reset()
	return d
}

// SetEnabled enables or disables progression. The current rate is kept.
func (d *DifficultyRamp) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether the ramp advances.
func (d *DifficultyRamp) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Increment > 0
}

// Reset returns the multiplier to its starting value.
func (d *DifficultyRamp) Reset() {
	start := d.cfg.Start
	if start <= 0 || math.IsNaN(start) {
		start = 1.0
	}
	d.rate = start
	if d.cfg.Ceiling > 0 && d.rate > d.cfg.Ceiling {
		d.rate = d.cfg.Ceiling
	}
}

// Advance applies one tick of progression and returns the new multiplier.
// The multiplier never decreases and never exceeds the ceiling.
func (d *DifficultyRamp) Advance() float64 {
	if !d.IsEnabled() {
		return d.rate
	}
	d.rate += d.cfg.Increment
	if d.cfg.Ceiling > 0 && d.rate > d.cfg.Ceiling {
		d.rate = d.cfg.Ceiling
	}
	return d.rate
}

// Rate returns the current multiplier.
func (d *DifficultyRamp) Rate() float64 {
	return d.rate
}

// Speed scales a base speed by the current multiplier.
func (d *DifficultyRamp) Speed(base float64) float64 {
	return base * d.rate
}
