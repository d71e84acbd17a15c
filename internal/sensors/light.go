// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// ISL29003 register map.
const (
	islRegCommand = 0x00
	islRegControl = 0x01
	islRegDataLSB = 0x04

	islEnable = 0x80 // command: enable, continuous integration, 16-bit, diode 1

	// DefaultISL29003Addr is the fixed bus address of the part.
	DefaultISL29003Addr = 0x44
)

// LightRange is the full-scale range of the light sensor.
type LightRange uint8

const (
	Range1000 LightRange = iota
	Range4000
	Range16000
	Range64000
)

// Lux returns the full-scale value of r.
func (r LightRange) Lux() uint32 {
	return [...]uint32{1000, 4000, 16000, 64000}[r&3]
}

// ISL29003 is an ambient light sensor on I2C.
type ISL29003 struct {
	dev    *i2c.Dev
	lux    uint32
	buffer [2]byte
}

// NewISL29003 enables the sensor and selects its range.
func NewISL29003(bus i2c.Bus, addr uint16, r LightRange) (*ISL29003, error) {
	s := &ISL29003{dev: &i2c.Dev{Bus: bus, Addr: addr}, lux: r.Lux()}
	if _, err := s.dev.Write([]byte{islRegCommand, islEnable}); err != nil {
		return nil, fmt.Errorf("light: enable: %w", err)
	}
	if _, err := s.dev.Write([]byte{islRegControl, byte(r&3) << 2}); err != nil {
		return nil, fmt.Errorf("light: set range: %w", err)
	}
	return s, nil
}

// ReadLight returns the latest conversion scaled to lux.
func (s *ISL29003) ReadLight() (uint32, error) {
	if err := s.dev.Tx([]byte{islRegDataLSB}, s.buffer[:]); err != nil {
		return 0, fmt.Errorf("light: read data: %w", err)
	}
	raw := uint32(s.buffer[0]) | uint32(s.buffer[1])<<8
	return s.lux * raw / 65536, nil
}
