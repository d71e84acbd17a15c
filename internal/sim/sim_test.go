// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/baseboard/internal/display"
	"github.com/relabs-tech/baseboard/internal/sensors"
)

func TestJoystick_Every(t *testing.T) {
	j := &Joystick{Every: 3}
	var got []sensors.Buttons
	for i := 0; i < 6; i++ {
		b, err := j.Read()
		require.NoError(t, err)
		got = append(got, b)
	}
	assert.Equal(t, []sensors.Buttons{0, 0, sensors.Right, 0, 0, sensors.Right}, got)
}

func TestJoystick_Script(t *testing.T) {
	j := &Joystick{Script: []sensors.Buttons{sensors.Left, 0}}
	for _, want := range []sensors.Buttons{sensors.Left, 0, sensors.Left} {
		b, err := j.Read()
		require.NoError(t, err)
		assert.Equal(t, want, b)
	}
}

func TestReadingsInRange(t *testing.T) {
	temp, err := NewTemperature().ReadTemperature()
	require.NoError(t, err)
	assert.InDelta(t, 22, temp, 1.6)

	light, err := NewLight().ReadLight()
	require.NoError(t, err)
	assert.LessOrEqual(t, light, uint32(650))

	pos, err := NewPot().ReadPosition()
	require.NoError(t, err)
	assert.LessOrEqual(t, pos, uint16(sensors.PotMax))

	a, err := NewAccel().ReadAccel()
	require.NoError(t, err)
	assert.Equal(t, int32(16384), a.Z)
}

func TestLEDs(t *testing.T) {
	l := &LEDs{}
	require.NoError(t, l.SetLeds(0xFFFF, 0))
	assert.Equal(t, uint16(0xFFFF), l.State())
	require.NoError(t, l.SetLeds(0, 0x00FF))
	assert.Equal(t, uint16(0xFF00), l.State())
}

func TestDAC_Motor_Display(t *testing.T) {
	d := &DAC{}
	require.NoError(t, d.SetSample(1))
	require.NoError(t, d.SetSample(2))
	assert.Equal(t, 2, d.Samples())

	m := &Motor{}
	require.NoError(t, m.SetSpeed(40))
	assert.Equal(t, 40, m.Speed())

	disp := &Display{}
	require.NoError(t, disp.Clear(display.White))
	require.NoError(t, disp.DrawText(1, 0, "Light: 12Lux", display.Black, display.White))
	assert.Equal(t, "Light: 12Lux", disp.Text())
}
