package fader

const (
	// SensorRange is the exclusive upper bound of the raw sample domain.
	SensorRange = 26400
	// OutputRange is the inclusive upper bound of the 14-bit output domain.
	OutputRange = 16383
)

const (
	DefaultMin = SensorRange / 40
	DefaultMax = SensorRange - SensorRange/20
)

// Bounds holds the calibrated travel range in the raw sample domain.
// After any successful calibration or reset: 0 <= Min < Max <= SensorRange.
type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func DefaultBounds() Bounds {
	return Bounds{Min: DefaultMin, Max: DefaultMax}
}

// CalState is the persisted lifecycle flag of the calibration record.
// Reset uses the same default bounds as Uninitialized but is kept
// distinguishable for diagnostics.
type CalState int

const (
	StateUninitialized CalState = iota
	StateCalibrated
	StateReset
)

func (s CalState) String() string {
	switch s {
	case StateCalibrated:
		return "calibrated"
	case StateReset:
		return "reset"
	default:
		return "uninitialized"
	}
}

// Command is an inbound remote command as a (channel, code) pair.
type Command struct {
	Channel int `json:"channel"`
	Code    int `json:"code"`
}

// Message is a single 7-bit control message ready for a transport.
type Message struct {
	Channel int `json:"channel"`
	Control int `json:"control"`
	Value   int `json:"value"`
}
