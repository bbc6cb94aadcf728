package fader

// Action is the outcome of feeding one command to the recognizer.
type Action int

const (
	ActionNone Action = iota
	ActionCalibrate
	ActionReset
)

// armSeq is a two-stage arm/trigger machine. The arm code arms it from
// any state, the trigger code fires only while armed, and any other
// code silently disarms. There is no timeout.
type armSeq struct {
	armCode     int
	triggerCode int
	armed       bool
}

func (s *armSeq) feed(code int) bool {
	switch {
	case code == s.armCode:
		s.armed = true
	case s.armed && code == s.triggerCode:
		s.armed = false
		return true
	default:
		s.armed = false
	}
	return false
}

// Recognizer runs the calibrate and reset arm/trigger sequences.
// The two sequences are fully independent: every command on the gated
// channel is evaluated against both machines, so one may arm while the
// other disarms. Commands on other channels change nothing.
type Recognizer struct {
	channel   int
	calibrate armSeq
	reset     armSeq
}

func NewRecognizer(channel, calArm, calTrigger, resetArm, resetTrigger int) *Recognizer {
	return &Recognizer{
		channel:   channel,
		calibrate: armSeq{armCode: calArm, triggerCode: calTrigger},
		reset:     armSeq{armCode: resetArm, triggerCode: resetTrigger},
	}
}

// Handle feeds one inbound command and reports the triggered action,
// if any.
func (r *Recognizer) Handle(cmd Command) Action {
	if cmd.Channel != r.channel {
		return ActionNone
	}
	calFired := r.calibrate.feed(cmd.Code)
	resetFired := r.reset.feed(cmd.Code)
	switch {
	case calFired:
		return ActionCalibrate
	case resetFired:
		return ActionReset
	}
	return ActionNone
}
