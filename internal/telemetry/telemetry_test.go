// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/baseboard/internal/imu"
	"github.com/relabs-tech/baseboard/internal/leds"
)

type fakeToken struct {
	done bool
	err  error
}

func (t *fakeToken) Wait() bool                     { return t.done }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.done }
func (t *fakeToken) Done() <-chan struct{}          { ch := make(chan struct{}); close(ch); return ch }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// fakeClient implements only Publish; other methods panic via the nil embed.
type fakeClient struct {
	mqtt.Client
	msgs  []published
	token *fakeToken
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.msgs = append(c.msgs, published{topic, qos, retained, payload.([]byte)})
	return c.token
}

func sampleSnapshot() Snapshot {
	temp := 21.5
	return Snapshot{
		Time:        "2026-01-02T03:04:05Z",
		TickMs:      1234,
		Mode:        "temperature",
		Display:     "Temp: 21.5C",
		Temperature: &temp,
		Light:       120,
		LEDs:        leds.Compute(120),
		Accel:       imu.Accel{X: 1, Y: -2, Z: 980},
		Magnitude:   4,
	}
}

func TestMQTTSink_Publish(t *testing.T) {
	client := &fakeClient{token: &fakeToken{done: true}}
	sink := NewMQTTSink(client, "baseboard/state")

	require.NoError(t, sink.Publish(sampleSnapshot()))
	require.Len(t, client.msgs, 1)
	msg := client.msgs[0]
	assert.Equal(t, "baseboard/state", msg.topic)
	assert.Equal(t, byte(0), msg.qos)
	assert.False(t, msg.retained)

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.payload, &got))
	assert.Equal(t, "temperature", got["mode"])
	assert.Equal(t, 21.5, got["temp_c"])
	assert.NotContains(t, got, "motor_pct")
	assert.Equal(t, float64(0xFFFF), got["leds"].(map[string]any)["on"])
}

func TestMQTTSink_Errors(t *testing.T) {
	sink := NewMQTTSink(&fakeClient{token: &fakeToken{done: false}}, "x")
	assert.ErrorContains(t, sink.Publish(sampleSnapshot()), "timed out")

	sink = NewMQTTSink(&fakeClient{token: &fakeToken{done: true, err: errors.New("not connected")}}, "x")
	assert.ErrorContains(t, sink.Publish(sampleSnapshot()), "not connected")
}

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func TestSerialSink(t *testing.T) {
	w := &bufferCloser{}
	sink := NewSerialSink(w)

	s := sampleSnapshot()
	s.Alarm = true
	require.NoError(t, sink.Publish(s))
	require.NoError(t, sink.Close())

	line := w.String()
	assert.True(t, strings.HasSuffix(line, "\r\n"))
	assert.Contains(t, line, `"Temp: 21.5C"`)
	assert.Contains(t, line, "leds=FFFF")
	assert.Contains(t, line, "ALARM")
	assert.True(t, w.closed)
}

func TestSnapshot_Line(t *testing.T) {
	s := sampleSnapshot()
	s.Errors = []string{"light: read data: nack"}
	s.Sound = true

	line := s.Line()
	assert.Contains(t, line, "mode=temperature")
	assert.Contains(t, line, "acc=1,-2,980")
	assert.Contains(t, line, " sound")
	assert.Contains(t, line, "errors=1")
	assert.NotContains(t, line, "ALARM")
}
