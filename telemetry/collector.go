package telemetry

import "math"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationSteps int64
	dt                  float32

	// Current window tracking
	windowStartStep int64

	// Event counters for current window
	switches int
	settles  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per step (used for step-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	stepsPerWindow := int64(math.Round(windowDurationSec / float64(dt)))
	if stepsPerWindow < 1 {
		stepsPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationSteps: stepsPerWindow,
		dt:                  dt,
	}
}

// RecordSwitch records a change of active target.
func (c *Collector) RecordSwitch() {
	c.switches++
}

// RecordSettle records a morph reaching its target.
func (c *Collector) RecordSettle() {
	c.settles++
}

// ShouldFlush returns true if enough steps have passed to flush the window.
func (c *Collector) ShouldFlush(currentStep int64) bool {
	return currentStep-c.windowStartStep >= c.windowDurationSteps
}

// Flush produces a WindowStats and resets counters for the next window.
// speeds is sorted in place.
func (c *Collector) Flush(currentStep int64, active string, msd float64, speeds []float64) WindowStats {
	sp := ComputeSpeedStats(speeds)

	stats := WindowStats{
		WindowStartStep: c.windowStartStep,
		WindowEndStep:   currentStep,
		SimTimeSec:      float64(currentStep) * float64(c.dt),

		Active:    active,
		Particles: len(speeds),

		Switches: c.switches,
		Settles:  c.settles,

		MSD: msd,

		SpeedMean: sp.Mean,
		SpeedP10:  sp.P10,
		SpeedP50:  sp.P50,
		SpeedP90:  sp.P90,
		SpeedMax:  sp.Max,
	}

	// Reset for next window
	c.windowStartStep = currentStep
	c.switches = 0
	c.settles = 0

	return stats
}

// WindowDurationSteps returns the number of steps per window.
func (c *Collector) WindowDurationSteps() int64 {
	return c.windowDurationSteps
}
