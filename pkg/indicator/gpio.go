package indicator

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// GPIOIndicator drives an LED on a host GPIO pin.
type GPIOIndicator struct {
	pin gpio.PinIO
	on  bool
}

func NewGPIO(name string) (*GPIOIndicator, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("gpio pin %q not found", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("gpio %s: %w", name, err)
	}
	return &GPIOIndicator{pin: pin}, nil
}

func (g *GPIOIndicator) Set(on bool) error {
	if on == g.on {
		return nil
	}
	g.on = on
	return g.pin.Out(gpio.Level(on))
}

func (g *GPIOIndicator) Close() error {
	return g.pin.Out(gpio.Low)
}
