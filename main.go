package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ericogr/fader-to-midi/pkg/config"
	"github.com/ericogr/fader-to-midi/pkg/fader"
	"github.com/ericogr/fader-to-midi/pkg/indicator"
	"github.com/ericogr/fader-to-midi/pkg/output"
	"github.com/ericogr/fader-to-midi/pkg/output/console"
	outmqtt "github.com/ericogr/fader-to-midi/pkg/output/mqtt"
	"github.com/ericogr/fader-to-midi/pkg/output/serialmidi"
	"github.com/ericogr/fader-to-midi/pkg/sensor"
	"github.com/ericogr/fader-to-midi/pkg/store"
)

const commandQueueSize = 16

func main() {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	sen, err := initSensor(cfg)
	if err != nil {
		logrus.Fatalf("sensor: %v", err)
	}
	defer sen.Close()

	commands := make(chan fader.Command, commandQueueSize)
	outputs, err := initOutputs(&cfg, commands)
	if err != nil {
		logrus.Fatalf("outputs: %v", err)
	}
	defer closeOutputs(outputs)

	ind, err := initIndicator(cfg)
	if err != nil {
		logrus.Fatalf("indicator: %v", err)
	}
	defer ind.Close()

	calStore := store.New(store.NewFile(cfg.CalibrationFile, store.RecordSize))
	ctrl := fader.NewController(faderParams(cfg), calStore)
	logrus.Infof("starting: bounds=%+v state=%s outputs=%d", ctrl.Bounds(), ctrl.State(), len(outputs))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	run(ctrl, sen, outputs, ind, commands, computeLoopInterval(cfg), sigCh)
	logrus.Info("shutting down")
}

func run(ctrl *fader.Controller, sen sensor.Sensor, outputs []output.Output, ind indicator.Indicator, commands <-chan fader.Command, intervalMs int, stop <-chan os.Signal) {
	ticker := time.NewTicker(time.Duration(intervalMs) * time.Millisecond)
	defer ticker.Stop()

	sensorFaults := 0
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		drainCommands(commands, ctrl)

		raw, err := sen.ReadRaw()
		if err != nil {
			// Hold the last output rather than propagate a transient
			// sensor fault.
			sensorFaults++
			logrus.Warnf("sensor read (fault %d): %v", sensorFaults, err)
			continue
		}
		sensorFaults = 0

		msgs, err := ctrl.Step(raw)
		if err != nil {
			logrus.Errorf("step: %v", err)
		}
		if err := ind.Set(ctrl.Calibrating()); err != nil {
			logrus.Warnf("indicator: %v", err)
		}

		if len(msgs) == 0 {
			continue
		}
		for _, out := range outputs {
			if err := out.Send(msgs); err != nil {
				logrus.Errorf("output send: %v", err)
			}
		}
	}
}

// drainCommands empties the inbound queue into the controller,
// preserving arrival order.
func drainCommands(commands <-chan fader.Command, ctrl *fader.Controller) {
	for {
		select {
		case cmd := <-commands:
			if err := ctrl.HandleCommand(cmd); err != nil {
				logrus.Errorf("command %+v: %v", cmd, err)
			}
		default:
			return
		}
	}
}

// computeLoopInterval derives the main loop period from the ADC sample
// rate, with headroom for the conversion itself.
func computeLoopInterval(cfg config.Config) int {
	interval := 1000/cfg.SampleRate + 2
	if interval < 5 {
		interval = 5
	}
	return interval
}

func initSensor(cfg config.Config) (sensor.Sensor, error) {
	switch strings.ToLower(cfg.SensorType) {
	case "fake", "simulation":
		return sensor.NewFake(cfg)
	default:
		return sensor.NewADS1115(cfg)
	}
}

func initOutputs(cfg *config.Config, commands chan<- fader.Command) ([]output.Output, error) {
	outs := make([]output.Output, 0, len(cfg.Outputs))
	for i := range cfg.Outputs {
		oc := &cfg.Outputs[i]
		switch strings.ToLower(oc.Type) {
		case "console":
			outs = append(outs, console.NewConsole())
		case "mqtt":
			if oc.MQTT == nil {
				oc.MQTT = &config.MQTTConfig{}
			}
			m, err := outmqtt.NewMQTT(*oc.MQTT, commands)
			if err != nil {
				return nil, fmt.Errorf("mqtt output: %w", err)
			}
			outs = append(outs, m)
		case "serial":
			if oc.Serial == nil || oc.Serial.Port == "" {
				return nil, fmt.Errorf("serial output requires a port")
			}
			s, err := serialmidi.NewSerial(*oc.Serial, commands)
			if err != nil {
				return nil, fmt.Errorf("serial output: %w", err)
			}
			outs = append(outs, s)
		default:
			return nil, fmt.Errorf("unknown output type %q", oc.Type)
		}
	}
	return outs, nil
}

func initIndicator(cfg config.Config) (indicator.Indicator, error) {
	if cfg.IndicatorPin == "" {
		return indicator.NewLog(), nil
	}
	return indicator.NewGPIO(cfg.IndicatorPin)
}

func closeOutputs(outputs []output.Output) {
	for _, out := range outputs {
		if err := out.Close(); err != nil {
			logrus.Warnf("output close: %v", err)
		}
	}
}

func faderParams(cfg config.Config) fader.Params {
	return fader.Params{
		Channel:          cfg.Fader.Channel,
		ControlMSB:       cfg.Fader.Control,
		ControlLSB:       cfg.Fader.Control + 32,
		CalibrateArm:     cfg.Fader.CalibrateArm,
		CalibrateTrigger: cfg.Fader.CalibrateTrigger,
		ResetArm:         cfg.Fader.ResetArm,
		ResetTrigger:     cfg.Fader.ResetTrigger,
	}
}
