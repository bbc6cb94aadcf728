package sensor

import (
	"math/rand"
	"sync"

	"github.com/ericogr/fader-to-midi/pkg/config"
	"github.com/ericogr/fader-to-midi/pkg/fader"
)

// FakeSensor simulates fader travel without hardware: a triangle
// sweep across the raw domain with a little quantization jitter, so
// the pipeline and the calibration engine can be exercised end to end.
type FakeSensor struct {
	pos  int
	dir  int
	step int
	rng  *rand.Rand
	mu   sync.Mutex
}

func NewFake(cfg config.Config) (Sensor, error) {
	step := fader.SensorRange / (4 * cfg.SampleRate)
	if step < 1 {
		step = 1
	}
	return &FakeSensor{dir: 1, step: step, rng: rand.New(rand.NewSource(1))}, nil
}

func (f *FakeSensor) ReadRaw() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pos += f.dir * f.step
	if f.pos >= fader.SensorRange-1 {
		f.pos = fader.SensorRange - 1
		f.dir = -1
	} else if f.pos <= 0 {
		f.pos = 0
		f.dir = 1
	}

	v := f.pos + f.rng.Intn(17) - 8
	if v < 0 {
		v = 0
	}
	if v >= fader.SensorRange {
		v = fader.SensorRange - 1
	}
	return v, nil
}

func (f *FakeSensor) Close() error { return nil }
