// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package motion decides when accelerometer movement is large enough to
// sound the alarm.
package motion

import (
	"github.com/relabs-tech/baseboard/internal/imu"
)

// Threshold is the motion magnitude, in accelerometer units, that must be
// exceeded for the alarm to fire.
const Threshold = 300

// Detector compares each reading against the one from the previous cycle.
type Detector struct {
	previous imu.Accel
	last     int64
}

// NewDetector seeds the previous reading. Call it once before the loop.
func NewDetector(seed imu.Accel) *Detector {
	return &Detector{previous: seed}
}

// Evaluate reports whether the movement since the previous reading exceeds
// Threshold. current always becomes the new previous reading.
func (d *Detector) Evaluate(current imu.Accel) bool {
	d.last = Magnitude(d.previous, current)
	d.previous = current
	return d.last > Threshold
}

// Previous returns the reading the next Evaluate will compare against.
func (d *Detector) Previous() imu.Accel {
	return d.previous
}

// LastMagnitude returns the magnitude computed by the latest Evaluate.
func (d *Detector) LastMagnitude() int64 {
	return d.last
}

// Magnitude is the L1 norm of b-a.
func Magnitude(a, b imu.Accel) int64 {
	return abs(int64(b.X)-int64(a.X)) +
		abs(int64(b.Y)-int64(a.Y)) +
		abs(int64(b.Z)-int64(a.Z))
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
