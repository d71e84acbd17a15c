// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package mode

// Mode selects what the display shows.
type Mode int

const (
	Temperature Mode = iota
	Light
	AccelX
	AccelY
	AccelZ
	MotorControl
)

// Count is the number of modes in the ring.
const Count = 6

var names = [Count]string{"temperature", "light", "accel_x", "accel_y", "accel_z", "motor"}

var labels = [Count]string{"Temp", "Light", "Acc X", "Acc Y", "Acc Z", "Motor"}

func (m Mode) String() string {
	if m < 0 || m >= Count {
		return "unknown"
	}
	return names[m]
}

// Label is the text shown in front of the value on the display.
func (m Mode) Label() string {
	if m < 0 || m >= Count {
		return ""
	}
	return labels[m]
}

// Ring holds the current display mode. The zero value starts at Temperature.
type Ring struct {
	current Mode
}

// NewRing returns a ring positioned at Temperature.
func NewRing() *Ring {
	return &Ring{current: Temperature}
}

// Current returns the selected mode.
func (r *Ring) Current() Mode {
	return r.current
}

// Advance moves to the next mode, wrapping from MotorControl to Temperature.
func (r *Ring) Advance() {
	r.current++
	if r.current >= Count {
		r.current = Temperature
	}
}

// Retreat moves to the previous mode, wrapping from Temperature to MotorControl.
func (r *Ring) Retreat() {
	if r.current == Temperature {
		r.current = MotorControl
		return
	}
	r.current--
}
