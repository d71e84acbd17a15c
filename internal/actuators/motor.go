// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package actuators

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Motor sets the speed of the board motor.
type Motor interface {
	SetSpeed(percent int) error
}

// PWMMotor drives a motor through a PWM capable pin.
type PWMMotor struct {
	pin   gpio.PinOut
	freq  physic.Frequency
	speed int
}

func NewPWMMotor(pin gpio.PinOut, freq physic.Frequency) *PWMMotor {
	return &PWMMotor{pin: pin, freq: freq}
}

// SetSpeed clamps percent to 0-100 and updates the duty cycle.
func (m *PWMMotor) SetSpeed(percent int) error {
	percent = min(max(percent, 0), 100)
	duty := gpio.DutyMax * gpio.Duty(percent) / 100
	if err := m.pin.PWM(duty, m.freq); err != nil {
		return fmt.Errorf("motor: pwm %d%%: %w", percent, err)
	}
	m.speed = percent
	return nil
}

// Speed returns the last speed applied.
func (m *PWMMotor) Speed() int {
	return m.speed
}
