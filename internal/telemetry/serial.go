// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"fmt"
	"io"
	"log"

	serial "github.com/jacobsa/go-serial/serial"
)

// SerialSink mirrors each snapshot as one text line on a UART.
type SerialSink struct {
	w io.WriteCloser
}

// OpenSerial opens port at baud, 8N1.
func OpenSerial(port string, baud int) (*SerialSink, error) {
	opts := serial.OpenOptions{
		PortName:        port,
		BaudRate:        uint(baud),
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}
	rwc, err := serial.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open serial %s: %w", port, err)
	}
	log.Printf("telemetry: serial mirror on %s at %d baud", port, baud)
	return NewSerialSink(rwc), nil
}

func NewSerialSink(w io.WriteCloser) *SerialSink {
	return &SerialSink{w: w}
}

func (s *SerialSink) Publish(snap Snapshot) error {
	if _, err := io.WriteString(s.w, snap.Line()+"\r\n"); err != nil {
		return fmt.Errorf("telemetry: serial write: %w", err)
	}
	return nil
}

func (s *SerialSink) Close() error {
	return s.w.Close()
}
