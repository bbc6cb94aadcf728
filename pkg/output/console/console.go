package console

import (
	"fmt"

	"github.com/ericogr/fader-to-midi/pkg/fader"
	"github.com/ericogr/fader-to-midi/pkg/output"
)

type ConsoleOutput struct{}

func NewConsole() output.Output { return &ConsoleOutput{} }

func (c *ConsoleOutput) Send(msgs []fader.Message) error {
	for _, m := range msgs {
		fmt.Printf("channel=%d control=%d value=%d\n", m.Channel, m.Control, m.Value)
	}
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }
