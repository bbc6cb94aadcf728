package fader

import "testing"

// sweep feeds one full high/low excursion to the engine and returns
// the last Observe result.
func sweep(e *Engine, high, low int) bool {
	e.Observe(high)
	return e.Observe(low)
}

func TestEngineTerminatesAfterFourSweeps(t *testing.T) {
	e := NewEngine()
	for i := 0; i < 3; i++ {
		if done := sweep(e, 26000, 100); done {
			t.Fatalf("terminated after %d sweeps", i+1)
		}
	}
	if !sweep(e, 26000, 100) {
		t.Fatalf("did not terminate after 4 sweeps")
	}
	b := e.Bounds()
	if b.Min >= b.Max {
		t.Fatalf("degenerate bounds: %+v", b)
	}
}

func TestEnginePartialMotionNeverCounts(t *testing.T) {
	e := NewEngine()
	// Wiggling near one extreme crosses only one threshold.
	for i := 0; i < 100; i++ {
		if e.Observe(26000) || e.Observe(21000) {
			t.Fatalf("partial motion terminated the run at iteration %d", i)
		}
	}
	if e.Sweeps() != 0 {
		t.Fatalf("sweeps = %d; want 0", e.Sweeps())
	}
}

func TestEngineBoundsApplyMargins(t *testing.T) {
	e := NewEngine()
	for i := 0; i < 4; i++ {
		sweep(e, 26000, 300)
	}
	b := e.Bounds()
	if b.Min != 300+calMargin {
		t.Fatalf("min = %d; want %d", b.Min, 300+calMargin)
	}
	if b.Max != 26000-calMargin {
		t.Fatalf("max = %d; want %d", b.Max, 26000-calMargin)
	}
}

func TestEngineBoundsClampDegenerateSweep(t *testing.T) {
	e := NewEngine()
	// Barely crossing the hysteresis thresholds leaves extremes far
	// inside the raw domain; the clamps defend the mapping.
	for i := 0; i < 4; i++ {
		sweep(e, armThreshold+1, disarmThreshold-1)
	}
	b := e.Bounds()
	if b.Min != minCalCeiling {
		t.Fatalf("min = %d; want clamp at %d", b.Min, minCalCeiling)
	}
	if b.Max != maxCalFloor {
		t.Fatalf("max = %d; want clamp at %d", b.Max, maxCalFloor)
	}
	if b.Min >= b.Max {
		t.Fatalf("degenerate bounds: %+v", b)
	}
}

func TestEngineBoundsNeverExceedDomain(t *testing.T) {
	e := NewEngine()
	for i := 0; i < 4; i++ {
		sweep(e, SensorRange, 0)
	}
	b := e.Bounds()
	if b.Min < 0 || b.Max > SensorRange {
		t.Fatalf("bounds outside raw domain: %+v", b)
	}
}
