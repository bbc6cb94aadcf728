package sensor

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/ericogr/fader-to-midi/pkg/config"
	"github.com/ericogr/fader-to-midi/pkg/fader"
)

const (
	pointerConv   = 0x00
	pointerConfig = 0x01
)

// ADS1115Sensor reads the fader wiper through one single-ended input
// of an ADS1115 and rescales the conversion to the raw sample domain.
type ADS1115Sensor struct {
	dev        *i2c.Dev
	bus        i2c.BusCloser
	channel    int
	sampleRate int
}

func NewADS1115(cfg config.Config) (Sensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open i2c: %w", err)
	}
	dev := &i2c.Dev{Addr: uint16(cfg.I2CAddress), Bus: bus}
	return &ADS1115Sensor{dev: dev, bus: bus, channel: cfg.ADCChannel, sampleRate: cfg.SampleRate}, nil
}

func (s *ADS1115Sensor) Close() error {
	if s.bus != nil {
		return s.bus.Close()
	}
	return nil
}

// ReadRaw runs one single-shot conversion and returns the result
// scaled into [0, fader.SensorRange). Negative conversions (wiper at
// ground with input noise) clamp to 0.
func (s *ADS1115Sensor) ReadRaw() (int, error) {
	msb, lsb, err := configForChannel(s.channel, s.sampleRate)
	if err != nil {
		return 0, err
	}
	if err := s.dev.Tx([]byte{pointerConfig, msb, lsb}, nil); err != nil {
		return 0, fmt.Errorf("write config: %w", err)
	}
	// wait for conversion (simple sleep)
	delayMs := int(1000.0/float64(s.sampleRate)) + 2
	time.Sleep(time.Duration(delayMs) * time.Millisecond)
	readBuf := make([]byte, 2)
	if err := s.dev.Tx([]byte{pointerConv}, readBuf); err != nil {
		return 0, fmt.Errorf("read conv: %w", err)
	}
	raw := int16(readBuf[0])<<8 | int16(readBuf[1])
	if raw < 0 {
		raw = 0
	}
	return int(raw) * fader.SensorRange / 32768, nil
}

func configForChannel(channel, sampleRate int) (byte, byte, error) {
	var mux byte
	switch channel {
	case 0:
		mux = 0x4
	case 1:
		mux = 0x5
	case 2:
		mux = 0x6
	case 3:
		mux = 0x7
	default:
		return 0, 0, fmt.Errorf("invalid channel %d", channel)
	}
	// PGA: use ±4.096V -> bits 001
	pga := byte(0x1)
	// data rate bits
	var dr byte
	switch sampleRate {
	case 8:
		dr = 0x0
	case 16:
		dr = 0x1
	case 32:
		dr = 0x2
	case 64:
		dr = 0x3
	case 128:
		dr = 0x4
	case 250:
		dr = 0x5
	case 475:
		dr = 0x6
	case 860:
		dr = 0x7
	default:
		dr = 0x4
	}
	var cfg uint16 = 0x8000 // OS = 1 (start single conversion)
	cfg |= uint16(mux) << 12
	cfg |= uint16(pga) << 9
	cfg |= 1 << 8 // single-shot mode
	cfg |= uint16(dr) << 5
	// comparator default: disabled (bits 1:0 = 11)
	cfg |= 0x3
	return byte(cfg >> 8), byte(cfg & 0xFF), nil
}
