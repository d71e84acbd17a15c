// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Buttons is a bitmask of joystick positions.
type Buttons uint8

const (
	Center Buttons = 1 << iota
	Up
	Down
	Left
	Right
)

// Direction is the horizontal input of one poll.
type Direction int

const (
	Neither Direction = iota
	DirLeft
	DirRight
)

// Direction classifies the mask. Right wins when both Left and Right are held.
func (b Buttons) Direction() Direction {
	switch {
	case b&Right != 0:
		return DirRight
	case b&Left != 0:
		return DirLeft
	default:
		return Neither
	}
}

func (b Buttons) String() string {
	if b == 0 {
		return "none"
	}
	s := ""
	for _, n := range []struct {
		bit  Buttons
		name string
	}{{Center, "center"}, {Up, "up"}, {Down, "down"}, {Left, "left"}, {Right, "right"}} {
		if b&n.bit != 0 {
			if s != "" {
				s += "+"
			}
			s += n.name
		}
	}
	return s
}

// JoystickPins are the five switch inputs. Switches pull the line low when
// pressed.
type JoystickPins struct {
	Center, Up, Down, Left, Right gpio.PinIn
}

// GPIOJoystick polls five active-low switches. It does no debouncing.
type GPIOJoystick struct {
	pins [5]gpio.PinIn
}

// NewGPIOJoystick configures every pin as input with pull-up.
func NewGPIOJoystick(p JoystickPins) (*GPIOJoystick, error) {
	j := &GPIOJoystick{pins: [5]gpio.PinIn{p.Center, p.Up, p.Down, p.Left, p.Right}}
	for i, pin := range j.pins {
		if pin == nil {
			return nil, fmt.Errorf("joystick: pin for %s not set", Buttons(1<<i))
		}
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("joystick: configure %s: %w", Buttons(1<<i), err)
		}
	}
	return j, nil
}

// Read samples all five switches once.
func (j *GPIOJoystick) Read() (Buttons, error) {
	var b Buttons
	for i, pin := range j.pins {
		if pin.Read() == gpio.Low {
			b |= 1 << i
		}
	}
	return b, nil
}
