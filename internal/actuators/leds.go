// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package actuators

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

const (
	// DefaultPCA9532Addr is the LED driver address on the baseboard.
	DefaultPCA9532Addr = 0x60

	pcaRegLS0      = 0x06
	pcaAutoIncr    = 0x10
	pcaSelectorOn  = 0x01
	pcaLedsPerByte = 4
)

// PCA9532 drives a bank of 16 LEDs. It keeps a shadow of the LED state so
// that SetLeds only changes the LEDs named in its masks.
type PCA9532 struct {
	dev    *i2c.Dev
	shadow uint16
}

// NewPCA9532 returns a driver with every LED off.
func NewPCA9532(bus i2c.Bus, addr uint16) (*PCA9532, error) {
	p := &PCA9532{dev: &i2c.Dev{Bus: bus, Addr: addr}}
	if err := p.write(); err != nil {
		return nil, err
	}
	return p, nil
}

// SetLeds switches on the LEDs set in on and switches off those set in off.
// off wins when a bit is in both masks.
func (p *PCA9532) SetLeds(on, off uint16) error {
	p.shadow |= on
	p.shadow &^= off
	return p.write()
}

// State returns the LEDs currently on.
func (p *PCA9532) State() uint16 {
	return p.shadow
}

func (p *PCA9532) write() error {
	if _, err := p.dev.Write(selectors(p.shadow)); err != nil {
		return fmt.Errorf("leds: write selectors: %w", err)
	}
	return nil
}

// selectors builds the LS0..LS3 write, two bits per LED.
func selectors(state uint16) []byte {
	buf := []byte{pcaRegLS0 | pcaAutoIncr, 0, 0, 0, 0}
	for i := 0; i < 16; i++ {
		if state&(1<<i) != 0 {
			buf[1+i/pcaLedsPerByte] |= pcaSelectorOn << (2 * (i % pcaLedsPerByte))
		}
	}
	return buf
}
