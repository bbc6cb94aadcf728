package main

import (
	"testing"

	"github.com/ericogr/fader-to-midi/pkg/config"
	"github.com/ericogr/fader-to-midi/pkg/fader"
	"github.com/ericogr/fader-to-midi/pkg/store"
)

func TestComputeLoopInterval(t *testing.T) {
	tests := []struct {
		rate int
		want int
	}{
		{128, 9},
		{8, 127},
		{860, 5}, // floor keeps the loop from spinning
	}
	for _, tt := range tests {
		cfg := config.Config{SampleRate: tt.rate}
		if got := computeLoopInterval(cfg); got != tt.want {
			t.Fatalf("rate %d: got %d want %d", tt.rate, got, tt.want)
		}
	}
}

func TestInitOutputsConsole(t *testing.T) {
	cfg := config.Config{Outputs: []config.OutputConfig{{Type: "console"}}}
	outs, err := initOutputs(&cfg, nil)
	if err != nil {
		t.Fatalf("initOutputs: %v", err)
	}
	if len(outs) != 1 {
		t.Fatalf("outputs len: %d", len(outs))
	}
}

func TestInitOutputsRejectsUnknownType(t *testing.T) {
	cfg := config.Config{Outputs: []config.OutputConfig{{Type: "carrier-pigeon"}}}
	if _, err := initOutputs(&cfg, nil); err == nil {
		t.Fatalf("expected error for unknown output type")
	}
}

func TestFaderParamsDerivesLSBControl(t *testing.T) {
	cfg := config.DefaultConfig()
	p := faderParams(cfg)
	if p.ControlLSB != p.ControlMSB+32 {
		t.Fatalf("lsb = %d; want msb+32 = %d", p.ControlLSB, p.ControlMSB+32)
	}
}

func TestDrainCommandsPreservesOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	ctrl := fader.NewController(faderParams(cfg), store.New(store.NewFake(store.RecordSize)))

	commands := make(chan fader.Command, 4)
	commands <- fader.Command{Channel: 0, Code: cfg.Fader.CalibrateArm}
	commands <- fader.Command{Channel: 0, Code: cfg.Fader.CalibrateTrigger}
	drainCommands(commands, ctrl)

	if !ctrl.Calibrating() {
		t.Fatalf("arm/trigger pair did not start a calibration")
	}
	if len(commands) != 0 {
		t.Fatalf("queue not drained: %d left", len(commands))
	}
}
