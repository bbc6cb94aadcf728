package sensor

import (
	"testing"

	"github.com/ericogr/fader-to-midi/pkg/config"
	"github.com/ericogr/fader-to-midi/pkg/fader"
)

func TestFakeSensorStaysInRawDomain(t *testing.T) {
	s, err := NewFake(config.DefaultConfig())
	if err != nil {
		t.Fatalf("new fake: %v", err)
	}
	for i := 0; i < 5000; i++ {
		v, err := s.ReadRaw()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if v < 0 || v >= fader.SensorRange {
			t.Fatalf("sample %d out of [0, %d)", v, fader.SensorRange)
		}
	}
}

func TestFakeSensorTraversesFullTravel(t *testing.T) {
	s, err := NewFake(config.DefaultConfig())
	if err != nil {
		t.Fatalf("new fake: %v", err)
	}
	sawHigh, sawLow := false, false
	for i := 0; i < 5000; i++ {
		v, _ := s.ReadRaw()
		if v > fader.SensorRange*3/4 {
			sawHigh = true
		}
		if v < fader.SensorRange/4 {
			sawLow = true
		}
	}
	if !sawHigh || !sawLow {
		t.Fatalf("simulated travel incomplete: high=%v low=%v", sawHigh, sawLow)
	}
}
