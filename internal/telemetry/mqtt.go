// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// publishTimeout bounds how long one publish may hold up the loop.
const publishTimeout = 50 * time.Millisecond

// MQTTSink publishes snapshots as JSON to one topic.
type MQTTSink struct {
	client mqtt.Client
	topic  string
}

// DialMQTT connects to broker and returns a sink publishing to topic.
func DialMQTT(broker, clientID, topic string) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("telemetry: MQTT connect: %w", token.Error())
	}
	log.Printf("telemetry: connected to MQTT broker at %s", broker)
	return NewMQTTSink(client, topic), nil
}

func NewMQTTSink(client mqtt.Client, topic string) *MQTTSink {
	return &MQTTSink{client: client, topic: topic}
}

func (m *MQTTSink) Publish(s Snapshot) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("telemetry: marshal: %w", err)
	}
	token := m.client.Publish(m.topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("telemetry: publish to %s timed out", m.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("telemetry: publish to %s: %w", m.topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (m *MQTTSink) Close() error {
	m.client.Disconnect(250)
	return nil
}
