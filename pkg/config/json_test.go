package config

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalConfigJSON(t *testing.T) {
	js := `{
        "i2c_bus": "2",
        "i2c_address": 72,
        "adc_channel": 1,
        "sample_rate": 250,
        "sensor_type": "ads1115",
        "calibration_file": "/var/lib/fader/cal.bin",
        "indicator_pin": "GPIO17",
        "fader": {
            "channel": 3,
            "control": 7,
            "calibrate_arm": 110,
            "calibrate_trigger": 111,
            "reset_arm": 112,
            "reset_trigger": 113
        },
        "outputs": [
            {"type": "mqtt", "mqtt": {"server": "tcp://broker:1883", "command_topic": "fader/command"}},
            {"type": "serial", "serial": {"port": "/dev/ttyUSB0", "baud": 31250}}
        ]
    }`

	var cfg Config
	if err := json.Unmarshal([]byte(js), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.I2CAddress != 72 || cfg.ADCChannel != 1 || cfg.SampleRate != 250 {
		t.Fatalf("sensor section: %+v", cfg)
	}
	if cfg.CalibrationFile != "/var/lib/fader/cal.bin" || cfg.IndicatorPin != "GPIO17" {
		t.Fatalf("paths: %+v", cfg)
	}
	if cfg.Fader.Channel != 3 || cfg.Fader.Control != 7 {
		t.Fatalf("fader section: %+v", cfg.Fader)
	}
	if cfg.Fader.CalibrateArm != 110 || cfg.Fader.ResetTrigger != 113 {
		t.Fatalf("command codes: %+v", cfg.Fader)
	}
	if len(cfg.Outputs) != 2 {
		t.Fatalf("outputs len: %d", len(cfg.Outputs))
	}
	if cfg.Outputs[0].MQTT == nil || cfg.Outputs[0].MQTT.CommandTopic != "fader/command" {
		t.Fatalf("mqtt output: %+v", cfg.Outputs[0])
	}
	if cfg.Outputs[1].Serial == nil || cfg.Outputs[1].Serial.Baud != 31250 {
		t.Fatalf("serial output: %+v", cfg.Outputs[1])
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
