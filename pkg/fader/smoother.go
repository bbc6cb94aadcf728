package fader

import "math"

const (
	defaultSnapThreshold = 96.0
	defaultKFast         = 0.85
	defaultKSlow         = 0.30
)

// Smoother damps ADC quantization noise with an exponential moving
// average. Changes larger than the snap threshold use the fast
// coefficient so a hand-operated fader tracks without perceptible lag.
type Smoother struct {
	value  float64
	snap   float64
	kFast  float64
	kSlow  float64
	primed bool
}

func NewSmoother() *Smoother {
	return &Smoother{snap: defaultSnapThreshold, kFast: defaultKFast, kSlow: defaultKSlow}
}

// Update feeds one raw sample and returns the smoothed value,
// clamped to [0, SensorRange].
func (s *Smoother) Update(raw int) int {
	in := float64(raw)
	if !s.primed {
		s.value = in
		s.primed = true
		return s.clamped()
	}

	k := s.kSlow
	if math.Abs(in-s.value) > s.snap {
		k = s.kFast
	}
	s.value += (in - s.value) * k
	return s.clamped()
}

// Reset clears the filter state so the next sample is taken as-is.
func (s *Smoother) Reset() {
	s.value = 0
	s.primed = false
}

func (s *Smoother) clamped() int {
	v := int(math.Round(s.value))
	if v < 0 {
		return 0
	}
	if v > SensorRange {
		return SensorRange
	}
	return v
}
