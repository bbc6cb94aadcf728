package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type MQTTConfig struct {
	Server       string `json:"server"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	ClientID     string `json:"client_id"`
	ControlTopic string `json:"control_topic"`
	CommandTopic string `json:"command_topic"`
}

type SerialConfig struct {
	Port string `json:"port"`
	Baud int    `json:"baud"`
}

type OutputConfig struct {
	Type   string        `json:"type"`
	MQTT   *MQTTConfig   `json:"mqtt,omitempty"`
	Serial *SerialConfig `json:"serial,omitempty"`
}

// FaderConfig holds the logical channel, the MSB controller ID (the
// LSB ID is always Control+32, 14-bit CC convention) and the four
// arm/trigger command codes.
type FaderConfig struct {
	Channel          int `json:"channel"`
	Control          int `json:"control"`
	CalibrateArm     int `json:"calibrate_arm"`
	CalibrateTrigger int `json:"calibrate_trigger"`
	ResetArm         int `json:"reset_arm"`
	ResetTrigger     int `json:"reset_trigger"`
}

type Config struct {
	I2CBus          string         `json:"i2c_bus"`
	I2CAddress      int            `json:"i2c_address"`
	ADCChannel      int            `json:"adc_channel"`
	SampleRate      int            `json:"sample_rate"`
	SensorType      string         `json:"sensor_type"`
	CalibrationFile string         `json:"calibration_file"`
	IndicatorPin    string         `json:"indicator_pin"`
	Fader           FaderConfig    `json:"fader"`
	Outputs         []OutputConfig `json:"outputs"`
}

func DefaultConfig() Config {
	return Config{
		I2CBus:          "2",
		I2CAddress:      0x48,
		ADCChannel:      0,
		SampleRate:      128,
		SensorType:      "ads1115",
		CalibrationFile: "fader-calibration.bin",
		Fader: FaderConfig{
			Channel:          0,
			Control:          1,
			CalibrateArm:     102,
			CalibrateTrigger: 103,
			ResetArm:         104,
			ResetTrigger:     105,
		},
		Outputs: []OutputConfig{{Type: "console"}},
	}
}

// LoadFromFlags loads configuration from a JSON file (optional) and
// flags. Flags override values present in the JSON file.
func LoadFromFlags() (Config, error) {
	cfgPath := flag.String("config", "", "Path to JSON config file")
	flagI2CBus := flag.String("i2c-bus", "", "I2C bus (e.g., '2' -> /dev/i2c-2)")
	flagI2CAddStr := flag.String("i2c-address", "", "I2C address (decimal or 0x hex)")
	flagADCChannel := flag.Int("adc-channel", -1, "ADS1115 input channel (0-3)")
	flagSampleRate := flag.Int("sample-rate", -1, "ADS1115 sample rate (SPS)")
	flagSensorType := flag.String("sensor-type", "", "sensor type: ads1115|fake")
	flagCalFile := flag.String("calibration-file", "", "Path to the calibration record file")
	flagIndicatorPin := flag.String("indicator-pin", "", "GPIO pin name for the calibration indicator")
	flagChannel := flag.Int("midi-channel", -1, "Logical channel for control messages and commands (0-15)")
	flagControl := flag.Int("control", -1, "MSB controller ID (LSB is control+32)")
	flagOutputs := flag.String("outputs", "", "Comma-separated outputs (console,mqtt,serial)")
	flagMQTTServer := flag.String("mqtt-server", "", "MQTT server (tcp://host:port)")
	flagMQTTUser := flag.String("mqtt-user", "", "MQTT username")
	flagMQTTPass := flag.String("mqtt-pass", "", "MQTT password")
	flagClientID := flag.String("mqtt-client-id", "", "MQTT client id")
	flagControlTopic := flag.String("mqtt-control-topic", "", "MQTT topic for outbound control messages")
	flagCommandTopic := flag.String("mqtt-command-topic", "", "MQTT topic for inbound commands")
	flagSerialPort := flag.String("serial-port", "", "Serial port for raw MIDI (e.g., /dev/ttyUSB0)")
	flagSerialBaud := flag.Int("serial-baud", -1, "Serial baud rate")

	flag.Parse()

	cfg := DefaultConfig()

	if *cfgPath != "" {
		b, err := os.ReadFile(*cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if *flagI2CBus != "" {
		cfg.I2CBus = *flagI2CBus
	}
	if *flagI2CAddStr != "" {
		v, err := parseIntOrHex(*flagI2CAddStr)
		if err != nil {
			return cfg, fmt.Errorf("i2c-address: %w", err)
		}
		cfg.I2CAddress = v
	}
	if *flagADCChannel != -1 {
		cfg.ADCChannel = *flagADCChannel
	}
	if *flagSampleRate != -1 {
		cfg.SampleRate = *flagSampleRate
	}
	if *flagSensorType != "" {
		cfg.SensorType = *flagSensorType
	}
	if *flagCalFile != "" {
		cfg.CalibrationFile = *flagCalFile
	}
	if *flagIndicatorPin != "" {
		cfg.IndicatorPin = *flagIndicatorPin
	}
	if *flagChannel != -1 {
		cfg.Fader.Channel = *flagChannel
	}
	if *flagControl != -1 {
		cfg.Fader.Control = *flagControl
	}
	if *flagOutputs != "" {
		parts := parseCSV(*flagOutputs)
		outs := make([]OutputConfig, 0, len(parts))
		for _, p := range parts {
			outs = append(outs, OutputConfig{Type: p})
		}
		cfg.Outputs = outs
	}
	if *flagMQTTServer != "" || *flagMQTTUser != "" || *flagMQTTPass != "" || *flagClientID != "" || *flagControlTopic != "" || *flagCommandTopic != "" {
		applyMQTTFlags(&cfg, *flagMQTTServer, *flagMQTTUser, *flagMQTTPass, *flagClientID, *flagControlTopic, *flagCommandTopic)
	}
	if *flagSerialPort != "" || *flagSerialBaud != -1 {
		applySerialFlags(&cfg, *flagSerialPort, *flagSerialBaud)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return errors.New("sample-rate must be > 0")
	}
	if c.ADCChannel < 0 || c.ADCChannel > 3 {
		return fmt.Errorf("adc-channel must be 0-3, got %d", c.ADCChannel)
	}
	if c.Fader.Channel < 0 || c.Fader.Channel > 15 {
		return fmt.Errorf("channel must be 0-15, got %d", c.Fader.Channel)
	}
	if c.Fader.Control < 0 || c.Fader.Control+32 > 127 {
		return fmt.Errorf("control must be 0-95 so control+32 stays 7-bit, got %d", c.Fader.Control)
	}
	for _, code := range []int{c.Fader.CalibrateArm, c.Fader.CalibrateTrigger, c.Fader.ResetArm, c.Fader.ResetTrigger} {
		if code < 0 || code > 127 {
			return fmt.Errorf("command code must be 7-bit, got %d", code)
		}
	}
	return nil
}

// applyMQTTFlags applies MQTT flags to all mqtt outputs; if none
// exist, one is created.
func applyMQTTFlags(cfg *Config, server, user, pass, clientID, controlTopic, commandTopic string) {
	applied := false
	for i := range cfg.Outputs {
		if strings.ToLower(cfg.Outputs[i].Type) != "mqtt" {
			continue
		}
		if cfg.Outputs[i].MQTT == nil {
			cfg.Outputs[i].MQTT = &MQTTConfig{}
		}
		setMQTT(cfg.Outputs[i].MQTT, server, user, pass, clientID, controlTopic, commandTopic)
		applied = true
	}
	if !applied {
		out := OutputConfig{Type: "mqtt", MQTT: &MQTTConfig{}}
		setMQTT(out.MQTT, server, user, pass, clientID, controlTopic, commandTopic)
		cfg.Outputs = append(cfg.Outputs, out)
	}
}

func setMQTT(m *MQTTConfig, server, user, pass, clientID, controlTopic, commandTopic string) {
	if server != "" {
		m.Server = server
	}
	if user != "" {
		m.Username = user
	}
	if pass != "" {
		m.Password = pass
	}
	if clientID != "" {
		m.ClientID = clientID
	}
	if controlTopic != "" {
		m.ControlTopic = controlTopic
	}
	if commandTopic != "" {
		m.CommandTopic = commandTopic
	}
}

func applySerialFlags(cfg *Config, port string, baud int) {
	applied := false
	for i := range cfg.Outputs {
		if strings.ToLower(cfg.Outputs[i].Type) != "serial" {
			continue
		}
		if cfg.Outputs[i].Serial == nil {
			cfg.Outputs[i].Serial = &SerialConfig{}
		}
		setSerial(cfg.Outputs[i].Serial, port, baud)
		applied = true
	}
	if !applied {
		out := OutputConfig{Type: "serial", Serial: &SerialConfig{}}
		setSerial(out.Serial, port, baud)
		cfg.Outputs = append(cfg.Outputs, out)
	}
}

func setSerial(s *SerialConfig, port string, baud int) {
	if port != "" {
		s.Port = port
	}
	if baud != -1 {
		s.Baud = baud
	}
}

func parseIntOrHex(s string) (int, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseInt(s[2:], 16, 0)
		return int(v), err
	}
	v, err := strconv.Atoi(s)
	return v, err
}

func parseCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
