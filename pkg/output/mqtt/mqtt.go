package mqtt

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/ericogr/fader-to-midi/pkg/config"
	"github.com/ericogr/fader-to-midi/pkg/fader"
	"github.com/ericogr/fader-to-midi/pkg/output"
)

const (
	DefaultServer       = "tcp://localhost:1883"
	DefaultClientID     = "fader-to-midi"
	DefaultControlTopic = "fader/control"
)

// MQTTOutput publishes control messages as JSON and, when a command
// topic is configured, feeds inbound (channel, code) commands into the
// daemon's command queue.
type MQTTOutput struct {
	client       mqtt.Client
	controlTopic string
}

func NewMQTT(cfg config.MQTTConfig, commands chan<- fader.Command) (output.Output, error) {
	server := cfg.Server
	if server == "" {
		server = DefaultServer
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = DefaultClientID
	}

	opts := mqtt.NewClientOptions().AddBroker(server).SetClientID(clientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	controlTopic := cfg.ControlTopic
	if controlTopic == "" {
		controlTopic = DefaultControlTopic
	}
	m := &MQTTOutput{client: client, controlTopic: controlTopic}

	if cfg.CommandTopic != "" && commands != nil {
		token := client.Subscribe(cfg.CommandTopic, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var cmd fader.Command
			if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
				logrus.Warnf("mqtt: command unmarshal error: %v", err)
				return
			}
			select {
			case commands <- cmd:
			default:
				logrus.Warn("mqtt: command queue full, dropping command")
			}
		})
		token.Wait()
		if token.Error() != nil {
			client.Disconnect(250)
			return nil, fmt.Errorf("mqtt subscribe %s: %w", cfg.CommandTopic, token.Error())
		}
		logrus.Infof("mqtt: subscribed to %s", cfg.CommandTopic)
	}

	return m, nil
}

func (m *MQTTOutput) Send(msgs []fader.Message) error {
	for _, msg := range msgs {
		b, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		token := m.client.Publish(m.controlTopic, 0, false, b)
		token.Wait()
		if token.Error() != nil {
			return token.Error()
		}
	}
	return nil
}

func (m *MQTTOutput) Close() error {
	if m.client != nil {
		m.client.Disconnect(250)
	}
	return nil
}
