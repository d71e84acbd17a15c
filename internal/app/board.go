// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/relabs-tech/baseboard/internal/actuators"
	"github.com/relabs-tech/baseboard/internal/display"
	"github.com/relabs-tech/baseboard/internal/leds"
	"github.com/relabs-tech/baseboard/internal/mode"
	"github.com/relabs-tech/baseboard/internal/motion"
	"github.com/relabs-tech/baseboard/internal/orientation"
	"github.com/relabs-tech/baseboard/internal/sensors"
	"github.com/relabs-tech/baseboard/internal/sound"
	"github.com/relabs-tech/baseboard/internal/telemetry"
	"github.com/relabs-tech/baseboard/internal/tick"
)

// DebounceInterval is the pause after a joystick press and at the end of
// every cycle.
const DebounceInterval = 200 * time.Millisecond

// Text position of the value line on the display.
const (
	textX = 1
	textY = 0
)

// Devices are the board collaborators used by the main loop.
type Devices struct {
	Joystick    sensors.Joystick
	Temperature sensors.TemperatureReader
	Light       sensors.LightReader
	Accel       sensors.Accelerometer
	Pot         sensors.Potentiometer
	LEDs        leds.Bank
	DAC         sound.DAC
	Motor       actuators.Motor
	Display     display.Renderer
}

func (d Devices) validate() error {
	missing := []struct {
		name   string
		absent bool
	}{
		{"joystick", d.Joystick == nil},
		{"temperature", d.Temperature == nil},
		{"light", d.Light == nil},
		{"accelerometer", d.Accel == nil},
		{"potentiometer", d.Pot == nil},
		{"leds", d.LEDs == nil},
		{"dac", d.DAC == nil},
		{"motor", d.Motor == nil},
		{"display", d.Display == nil},
	}
	for _, m := range missing {
		if m.absent {
			return fmt.Errorf("board: %s device missing", m.name)
		}
	}
	return nil
}

// Board is the main loop context. It owns the display mode, the previous
// accelerometer reading and the sound resources. The tick counter is only
// visible through its read-only Source.
type Board struct {
	dev      Devices
	ticks    tick.Source
	clock    sound.Clock
	modes    *mode.Ring
	detector *motion.Detector
	player   *sound.Player
	click    *sound.Buffer
	sinks    []telemetry.Sink
}

// Option customizes a Board.
type Option func(*Board)

// WithClock replaces the clock used for debounce delays and sound pacing.
func WithClock(c sound.Clock) Option {
	return func(b *Board) { b.clock = c }
}

// WithSound replaces the key click waveform.
func WithSound(buf *sound.Buffer) Option {
	return func(b *Board) { b.click = buf }
}

// WithSinks adds telemetry sinks that receive one snapshot per cycle.
func WithSinks(sinks ...telemetry.Sink) Option {
	return func(b *Board) { b.sinks = append(b.sinks, sinks...) }
}

// NewBoard seeds the motion detector with one accelerometer reading. A
// failing seed read is fatal.
func NewBoard(dev Devices, ticks tick.Source, opts ...Option) (*Board, error) {
	if err := dev.validate(); err != nil {
		return nil, err
	}
	b := &Board{
		dev:   dev,
		ticks: ticks,
		clock: sound.MonotonicClock{},
		modes: mode.NewRing(),
		click: sound.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.player = sound.NewPlayer(dev.DAC, b.clock)

	seed, err := dev.Accel.ReadAccel()
	if err != nil {
		return nil, fmt.Errorf("board: seed accelerometer: %w", err)
	}
	b.detector = motion.NewDetector(seed)
	return b, nil
}

// Mode returns the current display mode.
func (b *Board) Mode() mode.Mode {
	return b.modes.Current()
}

// Run repeats Cycle until ctx is cancelled. Cycle errors are logged and the
// loop carries on.
func (b *Board) Run(ctx context.Context) error {
	log.Println("board: starting main loop")
	for {
		select {
		case <-ctx.Done():
			log.Println("board: stopping main loop")
			return nil
		default:
		}
		if err := b.Cycle(); err != nil {
			log.Printf("board: cycle: %v", err)
		}
	}
}

// Cycle runs one loop iteration: joystick, sound and mode change, display,
// LEDs, motion alarm, telemetry, debounce. A failing step is skipped and
// reported; the remaining steps still run.
func (b *Board) Cycle() error {
	var errs []error
	snap := telemetry.Snapshot{}

	// 1-2. joystick, key click, mode change
	buttons, err := b.dev.Joystick.Read()
	if err != nil {
		errs = append(errs, fmt.Errorf("joystick: %w", err))
		buttons = 0
	}
	if dir := buttons.Direction(); dir != sensors.Neither {
		snap.Sound = true
		if err := b.player.Play(b.click); err != nil {
			errs = append(errs, err)
		}
		if dir == sensors.DirRight {
			b.modes.Advance()
		} else {
			b.modes.Retreat()
		}
		b.clock.Sleep(DebounceInterval)
	}

	// 3. display
	if err := b.render(&snap); err != nil {
		errs = append(errs, err)
	}

	// 4. LED bank
	if light, err := b.dev.Light.ReadLight(); err != nil {
		errs = append(errs, fmt.Errorf("light: %w", err))
	} else {
		snap.Light = light
		snap.LEDs = leds.Compute(light)
		if err := leds.Apply(b.dev.LEDs, snap.LEDs); err != nil {
			errs = append(errs, fmt.Errorf("leds: %w", err))
		}
	}

	// 5. motion alarm
	if a, err := b.dev.Accel.ReadAccel(); err != nil {
		errs = append(errs, fmt.Errorf("accel: %w", err))
	} else {
		snap.Accel = a
		snap.Tilt = orientation.FromAccel(a)
		snap.Alarm = b.detector.Evaluate(a)
		snap.Magnitude = b.detector.LastMagnitude()
		if snap.Alarm {
			if err := b.player.Alarm(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	// 6. telemetry
	b.publish(&snap, errs)

	// 7. debounce
	b.clock.Sleep(DebounceInterval)
	return errors.Join(errs...)
}

// render clears the display and shows the current mode with a fresh reading.
// MotorControl is the only mode that drives the motor.
func (b *Board) render(snap *telemetry.Snapshot) error {
	m := b.modes.Current()
	snap.Mode = m.String()

	var errs []error
	if err := b.dev.Display.Clear(display.White); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	text, err := b.modeText(m, snap)
	if err != nil {
		errs = append(errs, err)
		text = display.Line("%s: --", m.Label())
	}
	snap.Display = text

	if err := b.dev.Display.DrawText(textX, textY, text, display.Black, display.White); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}
	return errors.Join(errs...)
}

func (b *Board) modeText(m mode.Mode, snap *telemetry.Snapshot) (string, error) {
	switch m {
	case mode.Temperature:
		c, err := b.dev.Temperature.ReadTemperature()
		if err != nil {
			return "", fmt.Errorf("temperature: %w", err)
		}
		snap.Temperature = &c
		return display.Line("%s: %.1fC", m.Label(), c), nil

	case mode.Light:
		lux, err := b.dev.Light.ReadLight()
		if err != nil {
			return "", fmt.Errorf("light: %w", err)
		}
		return display.Line("%s: %dLux", m.Label(), lux), nil

	case mode.AccelX, mode.AccelY, mode.AccelZ:
		a, err := b.dev.Accel.ReadAccel()
		if err != nil {
			return "", fmt.Errorf("accel: %w", err)
		}
		return display.Line("%s: %d", m.Label(), a.Axis(int(m-mode.AccelX))), nil

	case mode.MotorControl:
		pos, err := b.dev.Pot.ReadPosition()
		if err != nil {
			return "", fmt.Errorf("potentiometer: %w", err)
		}
		pct := sensors.Percent(pos)
		if err := b.dev.Motor.SetSpeed(pct); err != nil {
			return "", fmt.Errorf("motor: %w", err)
		}
		snap.MotorPct = &pct
		return display.Line("%s: %d%%", m.Label(), pct), nil
	}
	return "", fmt.Errorf("unknown display mode %d", m)
}

func (b *Board) publish(snap *telemetry.Snapshot, errs []error) {
	if len(b.sinks) == 0 {
		return
	}
	snap.Time = b.clock.Now().UTC().Format(time.RFC3339)
	if b.ticks != nil {
		snap.TickMs = b.ticks.Millis()
	}
	for _, err := range errs {
		snap.Errors = append(snap.Errors, err.Error())
	}
	for _, s := range b.sinks {
		if err := s.Publish(*snap); err != nil {
			log.Printf("board: telemetry: %v", err)
		}
	}
}
