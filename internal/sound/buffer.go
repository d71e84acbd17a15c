// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sound

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

const (
	// HeaderSize is the length of the canonical WAV header; PCM data follows it.
	HeaderSize = 44
	// sampleRateOffset is where the little-endian sample rate lives in the header.
	sampleRateOffset = 24
)

var (
	ErrShortBuffer    = errors.New("sound: buffer shorter than header")
	ErrZeroSampleRate = errors.New("sound: sample rate is zero")
)

//go:embed assets/sound_8k.wav
var sound8k []byte

var defaultBuffer = mustParse(sound8k)

// Buffer is an immutable 8-bit PCM waveform with its WAV header.
type Buffer struct {
	data []byte
	rate uint32
}

// Parse checks the header of data and returns a Buffer over it. data must not
// be modified afterwards.
func Parse(data []byte) (*Buffer, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortBuffer, len(data))
	}
	rate := binary.LittleEndian.Uint32(data[sampleRateOffset : sampleRateOffset+4])
	if rate == 0 {
		return nil, ErrZeroSampleRate
	}
	return &Buffer{data: data, rate: rate}, nil
}

func mustParse(data []byte) *Buffer {
	b, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded sound: %v", err))
	}
	return b
}

// Default returns the compiled-in 8 kHz key click sound.
func Default() *Buffer {
	return defaultBuffer
}

// SampleRate returns the rate from the header, in Hz.
func (b *Buffer) SampleRate() uint32 {
	return b.rate
}

// SampleDelay is how long each sample is held: 1,000,000/rate microseconds.
func (b *Buffer) SampleDelay() time.Duration {
	return time.Duration(1_000_000/b.rate) * time.Microsecond
}

// Samples returns the PCM payload, starting right after the header.
func (b *Buffer) Samples() []byte {
	return b.data[HeaderSize:]
}

// Len returns the total size of the buffer including the header.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Duration is the time needed to play the whole payload.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(len(b.Samples())) * b.SampleDelay()
}
