// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sound

import (
	"fmt"
	"time"
)

const (
	// AlarmPulses is the number of high/low pulse pairs in the alarm tone.
	AlarmPulses = 100
	// AlarmPulseDelay is how long each half of a pulse pair is held.
	AlarmPulseDelay = 100 * time.Microsecond
	// AlarmHigh is the plateau value of the alarm square wave.
	AlarmHigh uint8 = 0xFF
)

// DAC takes one sample at a time and outputs it immediately.
type DAC interface {
	SetSample(v uint8) error
}

// Player writes waveforms to a DAC at a fixed pace. Both Play and Alarm block
// until the last sample has been held for its full delay.
type Player struct {
	dac   DAC
	clock Clock
}

// NewPlayer returns a player; a nil clock means MonotonicClock.
func NewPlayer(dac DAC, clock Clock) *Player {
	if clock == nil {
		clock = MonotonicClock{}
	}
	return &Player{dac: dac, clock: clock}
}

// Play outputs every payload sample of buf. A failed write does not stop
// playback; the first error is returned once the buffer has been played.
func (p *Player) Play(buf *Buffer) error {
	var firstErr error
	delay := buf.SampleDelay()
	start := p.clock.Now()
	for i, s := range buf.Samples() {
		if err := p.dac.SetSample(s); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("sound: sample %d: %w", i, err)
		}
		p.waitUntil(start.Add(time.Duration(i+1) * delay))
	}
	return firstErr
}

// Alarm emits the fixed square tone: AlarmPulses pairs of a high sample and a
// zero sample, each held for AlarmPulseDelay.
func (p *Player) Alarm() error {
	var firstErr error
	start := p.clock.Now()
	for i := 0; i < 2*AlarmPulses; i++ {
		v := AlarmHigh
		if i%2 == 1 {
			v = 0
		}
		if err := p.dac.SetSample(v); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("sound: alarm pulse %d: %w", i/2, err)
		}
		p.waitUntil(start.Add(time.Duration(i+1) * AlarmPulseDelay))
	}
	return firstErr
}

func (p *Player) waitUntil(deadline time.Time) {
	if d := deadline.Sub(p.clock.Now()); d > 0 {
		p.clock.Sleep(d)
	}
}
