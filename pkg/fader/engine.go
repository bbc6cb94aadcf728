package fader

const (
	sweepsRequired  = 4
	armThreshold    = SensorRange * 3 / 4
	disarmThreshold = SensorRange / 4

	// calMargin pulls the learned bounds inside the observed extremes
	// so the mechanically imprecise ends of travel still reach the
	// full output range.
	calMargin = 100

	minCalCeiling = SensorRange / 5
	maxCalFloor   = SensorRange - SensorRange/5
)

// Engine learns new travel bounds from full physical sweeps of the
// fader. It is a step-function state machine: the caller feeds one
// smoothed sample per main-loop iteration via Observe and checks the
// return value, so normal command handling stays responsive while a
// calibration is running.
type Engine struct {
	observedMin int
	observedMax int
	sweeps      int
	armed       bool
}

func NewEngine() *Engine {
	// Sentinels outside the raw domain so the first sample becomes
	// both extremes.
	return &Engine{observedMin: SensorRange + 1, observedMax: -1}
}

// Observe feeds one smoothed sample and reports whether enough full
// sweeps have been seen. A Schmitt latch arms above 75% of travel and
// counts a sweep when the value falls back below 25%, so wiggling near
// one extreme never terminates the run.
func (e *Engine) Observe(v int) bool {
	if v < e.observedMin {
		e.observedMin = v
	}
	if v > e.observedMax {
		e.observedMax = v
	}

	if !e.armed && v > armThreshold {
		e.armed = true
	} else if e.armed && v < disarmThreshold {
		e.armed = false
		e.sweeps++
	}

	return e.sweeps >= sweepsRequired
}

// Sweeps reports the number of full sweeps counted so far.
func (e *Engine) Sweeps() int {
	return e.sweeps
}

// Bounds derives the final calibration from the observed extremes:
// safety margins are applied on both sides, then each bound is clamped
// into its legal band in case the sweeps were degenerate or
// incomplete.
func (e *Engine) Bounds() Bounds {
	min := clamp(e.observedMin+calMargin, 0, minCalCeiling)
	max := clamp(e.observedMax-calMargin, maxCalFloor, SensorRange-calMargin)
	return Bounds{Min: min, Max: max}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
