// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package actuators

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// DefaultMCP4725Addr is the usual breakout address of the DAC.
const DefaultMCP4725Addr = 0x62

// MCP4725 is a 12-bit I2C DAC fed with 8-bit samples.
type MCP4725 struct {
	dev *i2c.Dev
	buf [2]byte
}

func NewMCP4725(bus i2c.Bus, addr uint16) *MCP4725 {
	return &MCP4725{dev: &i2c.Dev{Bus: bus, Addr: addr}}
}

// SetSample outputs v using a fast-mode write; the low nibble of the 12-bit
// code is zero.
func (d *MCP4725) SetSample(v uint8) error {
	code := uint16(v) << 4
	d.buf[0] = byte(code>>8) & 0x0F
	d.buf[1] = byte(code)
	if _, err := d.dev.Write(d.buf[:]); err != nil {
		return fmt.Errorf("dac: write: %w", err)
	}
	return nil
}
