package fader

import "fmt"

// Store persists the calibration record. Load never fails: corrupted
// or absent storage degrades to default bounds.
type Store interface {
	Load() (Bounds, CalState)
	Save(Bounds, CalState) error
}

// Params holds the fixed configuration the controller needs: the gated
// channel, the MSB/LSB controller IDs and the four arm/trigger codes.
type Params struct {
	Channel          int
	ControlMSB       int
	ControlLSB       int
	CalibrateArm     int
	CalibrateTrigger int
	ResetArm         int
	ResetTrigger     int
}

// Controller owns the active bounds and ties the pipeline together:
// smoother, mapper, encoder, command recognizer and calibration
// engine. It is not safe for concurrent use; the daemon drives it from
// a single loop.
type Controller struct {
	params     Params
	bounds     Bounds
	state      CalState
	smoother   *Smoother
	encoder    *Encoder
	recognizer *Recognizer
	engine     *Engine
	store      Store
}

func NewController(p Params, store Store) *Controller {
	b, st := store.Load()
	return &Controller{
		params:     p,
		bounds:     b,
		state:      st,
		smoother:   NewSmoother(),
		encoder:    NewEncoder(p.Channel, p.ControlMSB, p.ControlLSB),
		recognizer: NewRecognizer(p.Channel, p.CalibrateArm, p.CalibrateTrigger, p.ResetArm, p.ResetTrigger),
		store:      store,
	}
}

// Step processes one raw sample. During a calibration run the sample
// feeds the engine and no messages are produced; otherwise the sample
// is smoothed, mapped through the active bounds and encoded.
func (c *Controller) Step(raw int) ([]Message, error) {
	smoothed := c.smoother.Update(raw)

	if c.engine != nil {
		if !c.engine.Observe(smoothed) {
			return nil, nil
		}
		c.bounds = c.engine.Bounds()
		c.state = StateCalibrated
		c.engine = nil
		// The mapping changed, so resend both fields on the next step.
		c.encoder.Reset()
		if err := c.store.Save(c.bounds, c.state); err != nil {
			return nil, fmt.Errorf("save calibration: %w", err)
		}
		return nil, nil
	}

	return c.encoder.Encode(Map(smoothed, c.bounds)), nil
}

// HandleCommand feeds one inbound command to the recognizer and
// applies any triggered action. A completed reset sequence also
// cancels a running calibration, which doubles as the abort path for a
// stalled sweep.
func (c *Controller) HandleCommand(cmd Command) error {
	switch c.recognizer.Handle(cmd) {
	case ActionCalibrate:
		if c.engine == nil {
			c.engine = NewEngine()
		}
	case ActionReset:
		c.engine = nil
		c.bounds = DefaultBounds()
		c.state = StateReset
		c.encoder.Reset()
		if err := c.store.Save(c.bounds, c.state); err != nil {
			return fmt.Errorf("save reset: %w", err)
		}
	}
	return nil
}

// Calibrating reports whether a calibration run is in progress.
func (c *Controller) Calibrating() bool {
	return c.engine != nil
}

// Bounds returns the active calibration bounds.
func (c *Controller) Bounds() Bounds {
	return c.bounds
}

// State returns the calibration record state.
func (c *Controller) State() CalState {
	return c.state
}
