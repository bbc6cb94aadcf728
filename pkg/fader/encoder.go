package fader

// Encoder splits a 14-bit output value into MSB/LSB control messages
// and suppresses redundant traffic: nothing is emitted when the value
// is unchanged, and the MSB message is emitted only when the high
// 7 bits actually moved. Fine-grained fader motion usually changes
// only the low 7 bits.
type Encoder struct {
	channel    int
	controlMSB int
	controlLSB int
	prev       int
	primed     bool
}

func NewEncoder(channel, controlMSB, controlLSB int) *Encoder {
	return &Encoder{channel: channel, controlMSB: controlMSB, controlLSB: controlLSB}
}

// Encode returns the control messages for v, MSB first when present.
func (e *Encoder) Encode(v int) []Message {
	if e.primed && v == e.prev {
		return nil
	}

	var msgs []Message
	if !e.primed || v>>7 != e.prev>>7 {
		msgs = append(msgs, Message{Channel: e.channel, Control: e.controlMSB, Value: v >> 7 & 0x7F})
	}
	msgs = append(msgs, Message{Channel: e.channel, Control: e.controlLSB, Value: v & 0x7F})

	e.prev = v
	e.primed = true
	return msgs
}

// Reset forces the next Encode to emit both fields regardless of the
// previous value. Used after calibration changes the mapping.
func (e *Encoder) Reset() {
	e.prev = 0
	e.primed = false
}
