// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package leds

// LightThreshold is the ambient light level, in lux, at or above which the
// LED bank is switched off. Unrelated to the motion threshold.
const LightThreshold = 300

// All covers every LED in the 16-LED bank.
const All uint16 = 0xFFFF

// Mask says which LEDs to switch on and which to switch off.
type Mask struct {
	On  uint16 `json:"on"`
	Off uint16 `json:"off"`
}

// Compute maps a light reading to the LED bank state: all on in the dark,
// all off otherwise.
func Compute(light uint32) Mask {
	if light < LightThreshold {
		return Mask{On: All, Off: 0}
	}
	return Mask{On: 0, Off: All}
}

// Bank is an LED bank driver.
type Bank interface {
	SetLeds(on, off uint16) error
}

// Apply writes m to the bank.
func Apply(b Bank, m Mask) error {
	return b.SetLeds(m.On, m.Off)
}
