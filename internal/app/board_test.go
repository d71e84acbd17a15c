// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/baseboard/internal/display"
	"github.com/relabs-tech/baseboard/internal/imu"
	"github.com/relabs-tech/baseboard/internal/leds"
	"github.com/relabs-tech/baseboard/internal/mode"
	"github.com/relabs-tech/baseboard/internal/orientation"
	"github.com/relabs-tech/baseboard/internal/sensors"
	"github.com/relabs-tech/baseboard/internal/sound"
	"github.com/relabs-tech/baseboard/internal/telemetry"
)

var errBus = errors.New("bus error")

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

// debounces counts the sleeps of exactly DebounceInterval.
func (c *fakeClock) debounces() int {
	n := 0
	for _, d := range c.sleeps {
		if d == DebounceInterval {
			n++
		}
	}
	return n
}

type fakeJoystick struct {
	script []sensors.Buttons
	err    error
}

func (j *fakeJoystick) Read() (sensors.Buttons, error) {
	if j.err != nil {
		return 0, j.err
	}
	if len(j.script) == 0 {
		return 0, nil
	}
	b := j.script[0]
	j.script = j.script[1:]
	return b, nil
}

type fakeTemp struct {
	celsius float64
	err     error
}

func (t *fakeTemp) ReadTemperature() (float64, error) { return t.celsius, t.err }

type fakeLight struct {
	lux uint32
	err error
}

func (l *fakeLight) ReadLight() (uint32, error) { return l.lux, l.err }

// fakeAccel returns readings in order and repeats the last one.
type fakeAccel struct {
	readings []imu.Accel
	err      error
	reads    int
}

func (a *fakeAccel) ReadAccel() (imu.Accel, error) {
	if a.err != nil {
		return imu.Accel{}, a.err
	}
	i := a.reads
	if i >= len(a.readings) {
		i = len(a.readings) - 1
	}
	a.reads++
	if i < 0 {
		return imu.Accel{}, nil
	}
	return a.readings[i], nil
}

type fakePot struct{ pos uint16 }

func (p *fakePot) ReadPosition() (uint16, error) { return p.pos, nil }

type fakeLEDs struct {
	masks []leds.Mask
	err   error
}

func (l *fakeLEDs) SetLeds(on, off uint16) error {
	l.masks = append(l.masks, leds.Mask{On: on, Off: off})
	return l.err
}

type fakeDAC struct{ samples []uint8 }

func (d *fakeDAC) SetSample(v uint8) error {
	d.samples = append(d.samples, v)
	return nil
}

type fakeMotor struct{ speeds []int }

func (m *fakeMotor) SetSpeed(percent int) error {
	m.speeds = append(m.speeds, percent)
	return nil
}

type fakeDisplay struct {
	clears []display.Color
	texts  []string
}

func (d *fakeDisplay) Clear(c display.Color) error {
	d.clears = append(d.clears, c)
	return nil
}

func (d *fakeDisplay) DrawText(_, _ int, text string, _, _ display.Color) error {
	d.texts = append(d.texts, text)
	return nil
}

func (d *fakeDisplay) last() string {
	if len(d.texts) == 0 {
		return ""
	}
	return d.texts[len(d.texts)-1]
}

type fakeSink struct{ snaps []telemetry.Snapshot }

func (s *fakeSink) Publish(snap telemetry.Snapshot) error {
	s.snaps = append(s.snaps, snap)
	return nil
}

type fakeTicks struct{ ms uint32 }

func (t fakeTicks) Millis() uint32 { return t.ms }

type rig struct {
	joy     *fakeJoystick
	temp    *fakeTemp
	light   *fakeLight
	accel   *fakeAccel
	pot     *fakePot
	leds    *fakeLEDs
	dac     *fakeDAC
	motor   *fakeMotor
	display *fakeDisplay
	clock   *fakeClock
	sink    *fakeSink
}

func newRig() *rig {
	return &rig{
		joy:     &fakeJoystick{},
		temp:    &fakeTemp{celsius: 21.5},
		light:   &fakeLight{lux: 500},
		accel:   &fakeAccel{readings: []imu.Accel{{X: 10, Y: 20, Z: 1000}}},
		pot:     &fakePot{pos: 512},
		leds:    &fakeLEDs{},
		dac:     &fakeDAC{},
		motor:   &fakeMotor{},
		display: &fakeDisplay{},
		clock:   &fakeClock{now: time.Unix(1000, 0)},
		sink:    &fakeSink{},
	}
}

func (r *rig) devices() Devices {
	return Devices{
		Joystick:    r.joy,
		Temperature: r.temp,
		Light:       r.light,
		Accel:       r.accel,
		Pot:         r.pot,
		LEDs:        r.leds,
		DAC:         r.dac,
		Motor:       r.motor,
		Display:     r.display,
	}
}

func (r *rig) board(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoard(r.devices(), fakeTicks{ms: 42}, WithClock(r.clock), WithSinks(r.sink))
	require.NoError(t, err)
	return b
}

func TestNewBoard_MissingDevice(t *testing.T) {
	dev := newRig().devices()
	dev.Pot = nil
	_, err := NewBoard(dev, nil)
	assert.ErrorContains(t, err, "potentiometer device missing")
}

func TestNewBoard_SeedFailure(t *testing.T) {
	r := newRig()
	r.accel.err = errBus
	_, err := NewBoard(r.devices(), nil, WithClock(r.clock))
	assert.ErrorIs(t, err, errBus)
}

func TestCycle_IdleShowsTemperature(t *testing.T) {
	r := newRig()
	b := r.board(t)

	require.NoError(t, b.Cycle())

	assert.Equal(t, mode.Temperature, b.Mode())
	assert.Equal(t, "Temp: 21.5C", r.display.last())
	assert.Equal(t, []display.Color{display.White}, r.display.clears)
	assert.Empty(t, r.dac.samples)
	assert.Empty(t, r.motor.speeds)
	assert.Equal(t, []time.Duration{DebounceInterval}, r.clock.sleeps)
}

func TestCycle_RightAtAccelZPlaysSoundThenMotor(t *testing.T) {
	r := newRig()
	b := r.board(t)
	for i := 0; i < 4; i++ {
		b.modes.Advance()
	}
	require.Equal(t, mode.AccelZ, b.Mode())
	r.joy.script = []sensors.Buttons{sensors.Right}

	require.NoError(t, b.Cycle())

	assert.Equal(t, mode.MotorControl, b.Mode())
	assert.Equal(t, sound.Default().Samples(), r.dac.samples)
	assert.Equal(t, "Motor: 50%", r.display.last())
	assert.Equal(t, []int{50}, r.motor.speeds)
	assert.Equal(t, 2, r.clock.debounces())

	require.Len(t, r.sink.snaps, 1)
	snap := r.sink.snaps[0]
	assert.True(t, snap.Sound)
	assert.Equal(t, "motor", snap.Mode)
	require.NotNil(t, snap.MotorPct)
	assert.Equal(t, 50, *snap.MotorPct)
}

func TestCycle_LeftAtTemperatureWrapsToMotor(t *testing.T) {
	r := newRig()
	b := r.board(t)
	r.joy.script = []sensors.Buttons{sensors.Left}

	require.NoError(t, b.Cycle())

	assert.Equal(t, mode.MotorControl, b.Mode())
	assert.Len(t, r.dac.samples, len(sound.Default().Samples()))
}

func TestCycle_LeftAndRightCountsAsRight(t *testing.T) {
	r := newRig()
	b := r.board(t)
	r.joy.script = []sensors.Buttons{sensors.Left | sensors.Right}

	require.NoError(t, b.Cycle())
	assert.Equal(t, mode.Light, b.Mode())
	assert.Equal(t, "Light: 500Lux", r.display.last())
}

func TestCycle_OtherButtonsIgnored(t *testing.T) {
	r := newRig()
	b := r.board(t)
	r.joy.script = []sensors.Buttons{sensors.Up | sensors.Center}

	require.NoError(t, b.Cycle())
	assert.Equal(t, mode.Temperature, b.Mode())
	assert.Empty(t, r.dac.samples)
	assert.Equal(t, 1, r.clock.debounces())
}

func TestCycle_ModeWalk(t *testing.T) {
	r := newRig()
	r.accel.readings = []imu.Accel{{X: -7, Y: 8, Z: 900}}
	b := r.board(t)

	want := []string{"Light: 500Lux", "Acc X: -7", "Acc Y: 8", "Acc Z: 900", "Motor: 50%", "Temp: 21.5C"}
	for _, w := range want {
		r.joy.script = []sensors.Buttons{sensors.Right}
		require.NoError(t, b.Cycle())
		assert.Equal(t, w, r.display.last())
	}
	assert.Equal(t, mode.Temperature, b.Mode())
}

func TestCycle_LEDs(t *testing.T) {
	tests := []struct {
		lux  uint32
		want leds.Mask
	}{
		{lux: 0, want: leds.Mask{On: 0xFFFF, Off: 0}},
		{lux: 299, want: leds.Mask{On: 0xFFFF, Off: 0}},
		{lux: 300, want: leds.Mask{On: 0, Off: 0xFFFF}},
		{lux: 5000, want: leds.Mask{On: 0, Off: 0xFFFF}},
	}
	for _, tt := range tests {
		r := newRig()
		r.light.lux = tt.lux
		b := r.board(t)

		require.NoError(t, b.Cycle())
		assert.Equal(t, []leds.Mask{tt.want}, r.leds.masks, "lux %d", tt.lux)
	}
}

func TestCycle_MotionAlarm(t *testing.T) {
	tests := []struct {
		name  string
		moved imu.Accel
		alarm bool
	}{
		{name: "still", moved: imu.Accel{}, alarm: false},
		{name: "at threshold", moved: imu.Accel{X: 100, Y: -100, Z: 100}, alarm: false},
		{name: "above threshold", moved: imu.Accel{X: 200, Y: 100, Z: -1}, alarm: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig()
			r.accel.readings = []imu.Accel{{}, tt.moved}
			b := r.board(t)

			require.NoError(t, b.Cycle())

			if tt.alarm {
				require.Len(t, r.dac.samples, 2*sound.AlarmPulses)
				assert.Equal(t, sound.AlarmHigh, r.dac.samples[0])
				assert.Equal(t, uint8(0), r.dac.samples[1])
			} else {
				assert.Empty(t, r.dac.samples)
			}
			assert.Equal(t, tt.alarm, r.sink.snaps[0].Alarm)
			assert.Equal(t, tt.moved, b.detector.Previous())
		})
	}
}

func TestCycle_AlarmComparesConsecutiveReadings(t *testing.T) {
	r := newRig()
	r.accel.readings = []imu.Accel{{}, {X: 1000}, {X: 1000}}
	b := r.board(t)

	require.NoError(t, b.Cycle())
	assert.True(t, r.sink.snaps[0].Alarm)

	r.dac.samples = nil
	require.NoError(t, b.Cycle())
	assert.False(t, r.sink.snaps[1].Alarm)
	assert.Empty(t, r.dac.samples)
}

func TestCycle_ErrorsDoNotStopLaterSteps(t *testing.T) {
	r := newRig()
	b := r.board(t)
	r.temp.err = errBus
	r.leds.err = errors.New("nack")

	err := b.Cycle()
	require.Error(t, err)
	assert.ErrorIs(t, err, errBus)
	assert.ErrorContains(t, err, "temperature")
	assert.ErrorContains(t, err, "leds")

	assert.Equal(t, "Temp: --", r.display.last())
	assert.Len(t, r.leds.masks, 1)
	require.Len(t, r.sink.snaps, 1)
	assert.Len(t, r.sink.snaps[0].Errors, 2)
	assert.Equal(t, 1, r.clock.debounces())
}

func TestCycle_AccelFailureKeepsPrevious(t *testing.T) {
	r := newRig()
	r.accel.readings = []imu.Accel{{X: 5}}
	b := r.board(t)
	r.accel.err = errBus

	err := b.Cycle()
	assert.ErrorContains(t, err, "accel")
	assert.Equal(t, imu.Accel{X: 5}, b.detector.Previous())
	assert.Empty(t, r.dac.samples)
}

func TestCycle_JoystickFailure(t *testing.T) {
	r := newRig()
	b := r.board(t)
	r.joy.err = errBus

	err := b.Cycle()
	assert.ErrorContains(t, err, "joystick")
	assert.Equal(t, mode.Temperature, b.Mode())
	assert.Equal(t, "Temp: 21.5C", r.display.last())
}

func TestCycle_Snapshot(t *testing.T) {
	r := newRig()
	r.light.lux = 120
	b := r.board(t)

	require.NoError(t, b.Cycle())
	require.Len(t, r.sink.snaps, 1)
	snap := r.sink.snaps[0]

	assert.Equal(t, "temperature", snap.Mode)
	assert.Equal(t, "Temp: 21.5C", snap.Display)
	assert.Equal(t, uint32(42), snap.TickMs)
	assert.Equal(t, uint32(120), snap.Light)
	assert.Equal(t, leds.Mask{On: leds.All}, snap.LEDs)
	assert.Equal(t, imu.Accel{X: 10, Y: 20, Z: 1000}, snap.Accel)
	assert.Equal(t, orientation.FromAccel(snap.Accel), snap.Tilt)
	assert.Greater(t, snap.Tilt.Roll, 0.0)
	require.NotNil(t, snap.Temperature)
	assert.InDelta(t, 21.5, *snap.Temperature, 1e-9)
	assert.Nil(t, snap.MotorPct)
	assert.NotEmpty(t, snap.Time)
}

func TestRun_StopsOnCancel(t *testing.T) {
	r := newRig()
	b := r.board(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, b.Run(ctx))
	assert.Empty(t, r.sink.snaps)
}

func TestCheck(t *testing.T) {
	r := newRig()
	b := r.board(t)

	require.NoError(t, b.Check())

	require.Len(t, r.leds.masks, 17)
	assert.Equal(t, leds.Mask{On: 1, Off: 0xFFFE}, r.leds.masks[0])
	assert.Equal(t, leds.Mask{On: 0x8000, Off: 0x7FFF}, r.leds.masks[15])
	assert.Equal(t, leds.Mask{On: 0, Off: leds.All}, r.leds.masks[16])
	assert.Len(t, r.dac.samples, len(sound.Default().Samples())+2*sound.AlarmPulses)
	assert.Equal(t, "Board check OK", r.display.last())
}

func TestCheck_ReportsFailures(t *testing.T) {
	r := newRig()
	b := r.board(t)
	r.temp.err = errBus
	r.light.err = errBus

	err := b.Check()
	assert.ErrorIs(t, err, errBus)
	assert.ErrorContains(t, err, "temperature")
	assert.ErrorContains(t, err, "light")
	assert.Equal(t, "Check: 2 failed", r.display.last())
}

func TestSimDevices(t *testing.T) {
	dev := SimDevices()
	require.NoError(t, dev.validate())

	clock := &fakeClock{now: time.Unix(0, 0)}
	b, err := NewBoard(dev, nil, WithClock(clock))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		b.Cycle()
	}
	assert.Equal(t, mode.Light, b.Mode())
}

type fakeMessage struct {
	mqtt.Message
	payload []byte
}

func (m fakeMessage) Payload() []byte { return m.payload }

func TestConsoleHandler(t *testing.T) {
	var out bytes.Buffer
	h := consoleHandler(&out)

	h(nil, fakeMessage{payload: []byte(`{"mode":"light","display":"Light: 12Lux","alarm":true,"errors":["accel: bus error"]}`)})
	assert.Contains(t, out.String(), "[STATE]")
	assert.Contains(t, out.String(), "mode=light")
	assert.Contains(t, out.String(), "ALARM")
	assert.Contains(t, out.String(), "error: accel: bus error")
	assert.Contains(t, out.String(), "[TILT]")

	out.Reset()
	h(nil, fakeMessage{payload: []byte("not json")})
	assert.Empty(t, out.String())
}

func TestLightRange(t *testing.T) {
	for lux, want := range map[int]sensors.LightRange{
		1000:  sensors.Range1000,
		4000:  sensors.Range4000,
		16000: sensors.Range16000,
		64000: sensors.Range64000,
	} {
		assert.Equal(t, want, lightRange(lux))
		assert.Equal(t, uint32(lux), lightRange(lux).Lux())
	}
}
