package fader

import "testing"

func TestSmootherFirstSampleTakenAsIs(t *testing.T) {
	s := NewSmoother()
	if got := s.Update(12345); got != 12345 {
		t.Fatalf("first sample: got %d; want 12345", got)
	}
}

func TestSmootherConvergesToSteadyInput(t *testing.T) {
	s := NewSmoother()
	s.Update(0)
	var got int
	for i := 0; i < 50; i++ {
		got = s.Update(20000)
	}
	if got < 19990 || got > 20000 {
		t.Fatalf("did not converge: got %d", got)
	}
}

func TestSmootherDampsJitter(t *testing.T) {
	s := NewSmoother()
	s.Update(10000)
	// One sample of quantization jitter must not move the output by
	// the full excursion.
	got := s.Update(10040)
	if got == 10040 {
		t.Fatalf("jitter passed through unfiltered")
	}
	if got < 10000 || got > 10040 {
		t.Fatalf("smoothed value %d outside input span", got)
	}
}

func TestSmootherOutputStaysInDomain(t *testing.T) {
	s := NewSmoother()
	for _, raw := range []int{0, SensorRange - 1, 0, SensorRange - 1, 13200} {
		got := s.Update(raw)
		if got < 0 || got > SensorRange {
			t.Fatalf("Update(%d) = %d out of [0, %d]", raw, got, SensorRange)
		}
	}
}

func TestSmootherReset(t *testing.T) {
	s := NewSmoother()
	s.Update(20000)
	s.Reset()
	if got := s.Update(100); got != 100 {
		t.Fatalf("after reset: got %d; want 100", got)
	}
}
