// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package orientation

import (
	"math"

	"github.com/relabs-tech/baseboard/internal/imu"
)

// Tilt is the board attitude relative to gravity, in degrees.
type Tilt struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
}

// FromAccel computes roll and pitch from a single accelerometer sample in
// any unit. It is only meaningful while the board is at rest.
//
//	roll  = atan2(ay, az)
//	pitch = atan2(-ax, sqrt(ay² + az²))
func FromAccel(a imu.Accel) Tilt {
	ax, ay, az := float64(a.X), float64(a.Y), float64(a.Z)
	return Tilt{
		Roll:  math.Atan2(ay, az) * 180 / math.Pi,
		Pitch: math.Atan2(-ax, math.Sqrt(ay*ay+az*az)) * 180 / math.Pi,
	}
}
