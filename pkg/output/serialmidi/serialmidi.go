package serialmidi

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tarm/serial"

	"github.com/ericogr/fader-to-midi/pkg/config"
	"github.com/ericogr/fader-to-midi/pkg/fader"
	"github.com/ericogr/fader-to-midi/pkg/output"
)

const (
	DefaultBaud = 31250 // MIDI wire rate

	statusControlChange = 0xB0
)

// SerialOutput writes raw MIDI control change bytes to a serial port
// and parses inbound control changes into remote commands.
type SerialOutput struct {
	port     *serial.Port
	mu       sync.Mutex
	closed   chan struct{}
	commands chan<- fader.Command
}

func NewSerial(cfg config.SerialConfig, commands chan<- fader.Command) (output.Output, error) {
	baud := cfg.Baud
	if baud == 0 {
		baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Port,
		Baud:        baud,
		ReadTimeout: 250 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Port, err)
	}

	s := &SerialOutput{port: port, closed: make(chan struct{}), commands: commands}
	if commands != nil {
		go s.readLoop()
	}
	return s, nil
}

func (s *SerialOutput) Send(msgs []fader.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range msgs {
		frame := []byte{
			statusControlChange | byte(m.Channel&0x0F),
			byte(m.Control & 0x7F),
			byte(m.Value & 0x7F),
		}
		if _, err := s.port.Write(frame); err != nil {
			return fmt.Errorf("serial write: %w", err)
		}
	}
	return nil
}

func (s *SerialOutput) Close() error {
	close(s.closed)
	return s.port.Close()
}

// readLoop parses inbound control change messages byte by byte.
// A CC on any channel becomes a Command carrying the controller number
// as its code; gating to the configured channel happens in the
// recognizer.
func (s *SerialOutput) readLoop() {
	var (
		channel int
		data    [2]byte
		nData   int
		inCC    bool
	)
	buf := make([]byte, 64)
	for {
		select {
		case <-s.closed:
			return
		default:
		}

		n, err := s.port.Read(buf)
		if err == io.EOF {
			// Read timeout with no pending bytes.
			continue
		}
		if err != nil {
			logrus.Warnf("serial: read error: %v", err)
			return
		}
		for _, b := range buf[:n] {
			switch {
			case b&0x80 != 0:
				inCC = b&0xF0 == statusControlChange
				channel = int(b & 0x0F)
				nData = 0
			case inCC:
				data[nData] = b
				nData++
				if nData == 2 {
					nData = 0
					cmd := fader.Command{Channel: channel, Code: int(data[0])}
					select {
					case s.commands <- cmd:
					default:
						logrus.Warn("serial: command queue full, dropping command")
					}
				}
			}
		}
	}
}
