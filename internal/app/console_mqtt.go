// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/baseboard/internal/config"
	"github.com/relabs-tech/baseboard/internal/telemetry"
)

// consoleHandler prints every state snapshot as one line.
func consoleHandler(w io.Writer) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		var s telemetry.Snapshot
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: state unmarshal error: %v", err)
			return
		}
		fmt.Fprintf(w, "[STATE] %s\n", s.Line())
		fmt.Fprintf(w, "[TILT]  ROLL=%6.2f  PITCH=%6.2f\n", s.Tilt.Roll, s.Tilt.Pitch)
		for _, e := range s.Errors {
			fmt.Fprintf(w, "        error: %s\n", e)
		}
	}
}

// RunConsoleMQTT subscribes to the board state topic and prints every
// snapshot until ctx is done.
func RunConsoleMQTT(ctx context.Context, w io.Writer) error {
	cfg := config.Get()
	if cfg == nil {
		return errors.New("config not initialized")
	}
	if cfg.MQTTBroker == "" {
		return errors.New("MQTT_BROKER is not set")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientID + "-console")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicState, 0, consoleHandler(w))
	token.Wait()
	if token.Error() != nil {
		client.Disconnect(250)
		return token.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicState)

	<-ctx.Done()

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
