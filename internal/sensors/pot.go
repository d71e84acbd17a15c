// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// PotMax is the full-scale reading of the 10-bit ADC.
const PotMax = 1023

const mcp3008Speed = 1 * physic.MegaHertz

// MCP3008 reads the potentiometer through one channel of an MCP3008 ADC.
type MCP3008 struct {
	conn    spi.Conn
	channel int
}

// NewMCP3008 connects to the ADC on port and selects a single-ended channel.
func NewMCP3008(port spi.Port, channel int) (*MCP3008, error) {
	if channel < 0 || channel > 7 {
		return nil, fmt.Errorf("pot: channel must be 0-7, got %d", channel)
	}
	conn, err := port.Connect(mcp3008Speed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("pot: SPI connect: %w", err)
	}
	return &MCP3008{conn: conn, channel: channel}, nil
}

func (s *MCP3008) ReadPosition() (uint16, error) {
	w := []byte{0x01, byte(0x80 | s.channel<<4), 0x00}
	r := make([]byte, len(w))
	if err := s.conn.Tx(w, r); err != nil {
		return 0, fmt.Errorf("pot: read channel %d: %w", s.channel, err)
	}
	return uint16(r[1]&0x03)<<8 | uint16(r[2]), nil
}

// Percent maps a raw position to 0-100.
func Percent(pos uint16) int {
	if pos > PotMax {
		pos = PotMax
	}
	return int(pos) * 100 / PotMax
}
