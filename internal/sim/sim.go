// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package sim provides simulated board devices that generate smoothly
// changing readings, so the console can run without hardware.
package sim

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/relabs-tech/baseboard/internal/display"
	"github.com/relabs-tech/baseboard/internal/imu"
	"github.com/relabs-tech/baseboard/internal/sensors"
)

type clock struct {
	start time.Time
}

func (c clock) elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// Temperature drifts slowly around 22°C.
type Temperature struct{ clock }

func NewTemperature() *Temperature { return &Temperature{clock{time.Now()}} }

func (s *Temperature) ReadTemperature() (float64, error) {
	return 22 + 1.5*math.Sin(s.elapsed()/30), nil
}

// Light sweeps between dusk and daylight every minute so the LED bank
// toggles.
type Light struct{ clock }

func NewLight() *Light { return &Light{clock{time.Now()}} }

func (s *Light) ReadLight() (uint32, error) {
	return uint32(350 + 300*math.Sin(s.elapsed()*2*math.Pi/60)), nil
}

// Accel rests at 1g on Z with small noise and a shake every 15 seconds.
type Accel struct{ clock }

func NewAccel() *Accel { return &Accel{clock{time.Now()}} }

func (s *Accel) ReadAccel() (imu.Accel, error) {
	t := s.elapsed()
	a := imu.Accel{
		X: int32(20 * math.Sin(t*3)),
		Y: int32(20 * math.Cos(t*2)),
		Z: 16384,
	}
	if math.Mod(t, 15) < 0.5 {
		a.X += int32(4000 * math.Sin(t*40))
	}
	return a, nil
}

// Pot turns back and forth over 20 seconds.
type Pot struct{ clock }

func NewPot() *Pot { return &Pot{clock{time.Now()}} }

func (s *Pot) ReadPosition() (uint16, error) {
	return uint16(sensors.PotMax * (0.5 + 0.5*math.Sin(s.elapsed()*2*math.Pi/20))), nil
}

// Joystick presses Right every Every polls, or replays Script when set.
type Joystick struct {
	Every  int
	Script []sensors.Buttons

	polls int
}

func (j *Joystick) Read() (sensors.Buttons, error) {
	j.polls++
	if len(j.Script) > 0 {
		return j.Script[(j.polls-1)%len(j.Script)], nil
	}
	if j.Every > 0 && j.polls%j.Every == 0 {
		return sensors.Right, nil
	}
	return 0, nil
}

// LEDs tracks the bank state the same way the LED driver does.
type LEDs struct {
	mu    sync.Mutex
	state uint16
}

func (l *LEDs) SetLeds(on, off uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	before := l.state
	l.state |= on
	l.state &^= off
	if l.state != before {
		log.Printf("sim: leds %016b", l.state)
	}
	return nil
}

func (l *LEDs) State() uint16 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// DAC counts samples instead of producing sound.
type DAC struct {
	mu      sync.Mutex
	samples int
	last    uint8
}

func (d *DAC) SetSample(v uint8) error {
	d.mu.Lock()
	d.samples++
	d.last = v
	d.mu.Unlock()
	return nil
}

// Samples returns how many samples were written.
func (d *DAC) Samples() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.samples
}

// Motor records the requested speed.
type Motor struct {
	speed int
}

func (m *Motor) SetSpeed(percent int) error {
	if percent != m.speed {
		log.Printf("sim: motor %d%%", percent)
	}
	m.speed = percent
	return nil
}

func (m *Motor) Speed() int { return m.speed }

// Display logs each text line that differs from the previous one.
type Display struct {
	last string
}

func (d *Display) Clear(display.Color) error { return nil }

func (d *Display) DrawText(_, _ int, text string, _, _ display.Color) error {
	if text != d.last {
		log.Printf("sim: display %q", text)
		d.last = text
	}
	return nil
}

// Text returns the last line drawn.
func (d *Display) Text() string { return d.last }
