package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	mqttQoS          = 1
	mqttWait         = 5 * time.Second
	mqttDisconnectMs = 250
)

type mqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTSink keeps the latest report per zone as a retained message on
// <prefix>/<domain>/<zone> for campus signage.
type MQTTSink struct {
	prefix string
	client mqttPublisher
}

// DialMQTT connects to broker and returns a sink publishing under prefix.
func DialMQTT(broker, clientID, prefix string) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttWait)
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt %s: %w", broker, token.Error())
	}
	return &MQTTSink{prefix: strings.TrimSuffix(prefix, "/"), client: c}, nil
}

// topicLevel makes free text safe as a single topic level: wildcards,
// separators and NUL become underscores, whitespace runs become one.
var topicLevel = strings.NewReplacer("+", "_", "#", "_", "/", "_", "\x00", "_")

// Topic is where an event is retained. The zone is always exactly one level.
func (m *MQTTSink) Topic(ev Event) string {
	zone := topicLevel.Replace(strings.Join(strings.Fields(ev.Zone), "_"))
	if zone == "" {
		zone = "_"
	}
	return m.prefix + "/" + ev.Domain + "/" + zone
}

func (m *MQTTSink) Name() string { return "mqtt" }

func (m *MQTTSink) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	token := m.client.Publish(m.Topic(ev), mqttQoS, true, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", m.Topic(ev), err)
	}
	return nil
}

func (m *MQTTSink) Close() error {
	m.client.Disconnect(mqttDisconnectMs)
	return nil
}
