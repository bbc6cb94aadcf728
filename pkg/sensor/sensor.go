package sensor

// Sensor produces raw fader samples in [0, fader.SensorRange).
type Sensor interface {
	ReadRaw() (int, error)
	Close() error
}
