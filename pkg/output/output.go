package output

import "github.com/ericogr/fader-to-midi/pkg/fader"

type Output interface {
	Send([]fader.Message) error
	Close() error
}

// concrete transports are in subpackages
