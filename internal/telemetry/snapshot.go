// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"fmt"
	"strings"

	"github.com/relabs-tech/baseboard/internal/imu"
	"github.com/relabs-tech/baseboard/internal/leds"
	"github.com/relabs-tech/baseboard/internal/orientation"
)

// Snapshot is what one loop cycle observed and did.
type Snapshot struct {
	Time    string `json:"time"` // RFC3339
	TickMs  uint32 `json:"tick_ms"`
	Mode    string `json:"mode"`
	Display string `json:"display"` // text shown on the OLED

	Temperature *float64 `json:"temp_c,omitempty"`
	MotorPct    *int     `json:"motor_pct,omitempty"`

	Light     uint32           `json:"light_lux"`
	LEDs      leds.Mask        `json:"leds"`
	Accel     imu.Accel        `json:"accel"`
	Tilt      orientation.Tilt `json:"tilt"`
	Magnitude int64            `json:"motion"`
	Alarm     bool             `json:"alarm"`
	Sound     bool             `json:"sound"`

	Errors []string `json:"errors,omitempty"`
}

// Sink receives one snapshot per cycle.
type Sink interface {
	Publish(s Snapshot) error
}

// Line renders s as a single human readable line.
func (s Snapshot) Line() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s t=%d mode=%s %q light=%d leds=%04X acc=%d,%d,%d |d|=%d",
		s.Time, s.TickMs, s.Mode, s.Display, s.Light, s.LEDs.On,
		s.Accel.X, s.Accel.Y, s.Accel.Z, s.Magnitude)
	if s.Sound {
		b.WriteString(" sound")
	}
	if s.Alarm {
		b.WriteString(" ALARM")
	}
	if len(s.Errors) > 0 {
		fmt.Fprintf(&b, " errors=%d", len(s.Errors))
	}
	return b.String()
}
