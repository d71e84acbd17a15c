// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package imu

// Accel is one accelerometer reading in sensor-native units.
type Accel struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
	Z int32 `json:"z"`
}

// Axis returns the component for axis 0 (x), 1 (y) or 2 (z).
func (a Accel) Axis(i int) int32 {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// AccelSource is anything that can produce accelerometer readings.
type AccelSource interface {
	ReadAccel() (Accel, error)
}
