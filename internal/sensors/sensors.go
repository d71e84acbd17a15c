// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/relabs-tech/baseboard/internal/imu"
)

// TemperatureReader returns the temperature in °C.
type TemperatureReader interface {
	ReadTemperature() (float64, error)
}

// LightReader returns the ambient light level in lux.
type LightReader interface {
	ReadLight() (uint32, error)
}

// Accelerometer returns one acceleration sample.
type Accelerometer = imu.AccelSource

// Potentiometer returns the raw wiper position (0-1023).
type Potentiometer interface {
	ReadPosition() (uint16, error)
}

// Joystick returns the buttons currently held down.
type Joystick interface {
	Read() (Buttons, error)
}

// LookupPin resolves a GPIO by its periph name (e.g. "GPIO17" or "17").
func LookupPin(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio pin %q not found", name)
	}
	return p, nil
}
