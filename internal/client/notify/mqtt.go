package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

var ErrPublishTimeout = errors.New("mqtt publish timed out")

const (
	mqttQoS            = 1
	mqttConnectTimeout = 5 * time.Second
	mqttPublishTimeout = 3 * time.Second
	mqttQuiesceMillis  = 250
)

type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTSink publishes each reminder as JSON to a topic.
type MQTTSink struct {
	client  publisher
	topic   string
	timeout time.Duration
	closeFn func()
}

// DialMQTT connects to brokerURL (e.g. tcp://localhost:1883) and returns a
// sink publishing to topic. Close disconnects.
func DialMQTT(brokerURL, clientID, topic string) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("failed to connect to mqtt broker %s: timed out", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to mqtt broker %s: %w", brokerURL, err)
	}

	s := NewMQTTSink(client, topic)
	s.closeFn = func() { client.Disconnect(mqttQuiesceMillis) }
	return s, nil
}

func NewMQTTSink(client publisher, topic string) *MQTTSink {
	return &MQTTSink{client: client, topic: topic, timeout: mqttPublishTimeout}
}

func (s *MQTTSink) Deliver(_ context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	token := s.client.Publish(s.topic, mqttQoS, false, payload)
	if !token.WaitTimeout(s.timeout) {
		return ErrPublishTimeout
	}
	return token.Error()
}

func (s *MQTTSink) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}
