// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"

	"github.com/relabs-tech/baseboard/internal/tick"
)

// BMETemperature reads a BME280/BMP280 over I2C.
type BMETemperature struct {
	dev *bmxx80.Dev
}

// NewBMETemperature initializes the sensor at addr (0x76 or 0x77).
func NewBMETemperature(bus i2c.Bus, addr uint16) (*BMETemperature, error) {
	dev, err := bmxx80.NewI2C(bus, addr, &bmxx80.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("temperature: bmxx80 init: %w", err)
	}
	return &BMETemperature{dev: dev}, nil
}

func (s *BMETemperature) ReadTemperature() (float64, error) {
	var e physic.Env
	if err := s.dev.Sense(&e); err != nil {
		return 0, fmt.Errorf("temperature: sense: %w", err)
	}
	return e.Temperature.Celsius(), nil
}

const (
	// HalfPeriods is how many output edges are timed per reading.
	HalfPeriods = 340
	// PeriodScale is the sensor output period per kelvin, in µs.
	PeriodScale = 10

	edgeTimeout = 100 * time.Millisecond
	zeroCelsius = 273.15
)

var ErrNoEdge = errors.New("temperature: no edge from sensor")

// PeriodTemperature reads a sensor whose square-wave output period is
// proportional to absolute temperature (MAX6576 style). It times a fixed
// number of half periods with the millisecond tick.
type PeriodTemperature struct {
	pin   gpio.PinIn
	ticks tick.Source
}

// NewPeriodTemperature configures pin for edge detection.
func NewPeriodTemperature(pin gpio.PinIn, ticks tick.Source) (*PeriodTemperature, error) {
	if err := pin.In(gpio.Float, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("temperature: configure %s: %w", pin, err)
	}
	return &PeriodTemperature{pin: pin, ticks: ticks}, nil
}

// ReadTemperature syncs on one edge, then times the next HalfPeriods edges.
// It blocks roughly half a second at room temperature.
func (s *PeriodTemperature) ReadTemperature() (float64, error) {
	if !s.pin.WaitForEdge(edgeTimeout) {
		return 0, fmt.Errorf("%w after 0 edges", ErrNoEdge)
	}
	start := s.ticks.Millis()
	for i := 0; i < HalfPeriods; i++ {
		if !s.pin.WaitForEdge(edgeTimeout) {
			return 0, fmt.Errorf("%w after %d edges", ErrNoEdge, i+1)
		}
	}
	return PeriodCelsius(tick.Elapsed(start, s.ticks.Millis())), nil
}

// PeriodCelsius converts the time taken by HalfPeriods edges to °C.
func PeriodCelsius(elapsedMs uint32) float64 {
	periodUs := 2 * 1000 * float64(elapsedMs) / HalfPeriods
	return periodUs/PeriodScale - zeroCelsius
}
