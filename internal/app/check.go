// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/relabs-tech/baseboard/internal/display"
	"github.com/relabs-tech/baseboard/internal/leds"
	"github.com/relabs-tech/baseboard/internal/sensors"
)

// ledSweepStep is how long each LED stays lit during Check.
const ledSweepStep = 30 * time.Millisecond

// Check exercises every device once: all sensors are read, the LEDs are
// swept one by one, the key click and the alarm tone are played. Every
// failure is logged and the joined errors are returned.
func (b *Board) Check() error {
	var errs []error
	fail := func(what string, err error) {
		err = fmt.Errorf("%s: %w", what, err)
		log.Printf("check: FAIL %v", err)
		errs = append(errs, err)
	}

	if c, err := b.dev.Temperature.ReadTemperature(); err != nil {
		fail("temperature", err)
	} else {
		log.Printf("check: temperature %.1f°C", c)
	}

	if lux, err := b.dev.Light.ReadLight(); err != nil {
		fail("light", err)
	} else {
		log.Printf("check: light %d lux (leds %s)", lux, ledState(leds.Compute(lux)))
	}

	if a, err := b.dev.Accel.ReadAccel(); err != nil {
		fail("accelerometer", err)
	} else {
		log.Printf("check: accelerometer x=%d y=%d z=%d", a.X, a.Y, a.Z)
	}

	if pos, err := b.dev.Pot.ReadPosition(); err != nil {
		fail("potentiometer", err)
	} else {
		log.Printf("check: potentiometer %d (%d%%)", pos, sensors.Percent(pos))
	}

	if buttons, err := b.dev.Joystick.Read(); err != nil {
		fail("joystick", err)
	} else {
		log.Printf("check: joystick %s", buttons)
	}

	for i := 0; i < 16; i++ {
		if err := b.dev.LEDs.SetLeds(1<<i, ^uint16(1<<i)); err != nil {
			fail(fmt.Sprintf("led %d", i), err)
			break
		}
		b.clock.Sleep(ledSweepStep)
	}
	if err := b.dev.LEDs.SetLeds(0, leds.All); err != nil {
		fail("leds off", err)
	}

	if err := b.player.Play(b.click); err != nil {
		fail("sound", err)
	} else {
		log.Printf("check: played %d samples at %d Hz", len(b.click.Samples()), b.click.SampleRate())
	}
	if err := b.player.Alarm(); err != nil {
		fail("alarm", err)
	}

	result := "Board check OK"
	if len(errs) > 0 {
		result = fmt.Sprintf("Check: %d failed", len(errs))
	}
	if err := display.Splash(b.dev.Display, result); err != nil {
		fail("display", err)
	}
	log.Printf("check: %s", result)
	return errors.Join(errs...)
}

func ledState(m leds.Mask) string {
	if m.On == leds.All {
		return "on"
	}
	return "off"
}
