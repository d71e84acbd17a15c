// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/relabs-tech/baseboard/internal/config"
	"github.com/relabs-tech/baseboard/internal/display"
	"github.com/relabs-tech/baseboard/internal/telemetry"
	"github.com/relabs-tech/baseboard/internal/tick"
)

// splashLines is shown once during start-up.
var splashLines = []string{"Baseboard demo", "Joystick: mode", "Pot: motor"}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setup starts the tick counter, brings up the devices and shows the splash
// screen. Every failure here is fatal to the caller.
func setup(ctx context.Context, cfg *config.Config, simulate bool) (Devices, *tick.Counter, io.Closer, error) {
	ticks := tick.NewCounter()
	if err := ticks.Start(ctx); err != nil {
		return Devices{}, nil, nil, fmt.Errorf("tick counter: %w", err)
	}

	var (
		dev    Devices
		closer io.Closer = nopCloser{}
		err    error
	)
	if simulate {
		log.Println("board: using simulated devices")
		dev = SimDevices()
	} else if dev, closer, err = OpenDevices(cfg, ticks); err != nil {
		return Devices{}, nil, nil, err
	}

	if err := display.Splash(dev.Display, splashLines...); err != nil {
		closer.Close()
		return Devices{}, nil, nil, fmt.Errorf("splash: %w", err)
	}
	return dev, ticks, closer, nil
}

// openSinks connects the telemetry sinks enabled in cfg. A sink that cannot
// be opened is logged and skipped.
func openSinks(cfg *config.Config) ([]telemetry.Sink, closers) {
	var (
		sinks   []telemetry.Sink
		toClose closers
	)
	if cfg.MQTTBroker != "" {
		s, err := telemetry.DialMQTT(cfg.MQTTBroker, cfg.MQTTClientID, cfg.TopicState)
		if err != nil {
			log.Printf("board: telemetry disabled: %v", err)
		} else {
			log.Printf("board: publishing state to %s on %s", cfg.TopicState, cfg.MQTTBroker)
			sinks = append(sinks, s)
			toClose = append(toClose, s)
		}
	}
	if cfg.SerialPort != "" {
		s, err := telemetry.OpenSerial(cfg.SerialPort, cfg.SerialBaud)
		if err != nil {
			log.Printf("board: serial log disabled: %v", err)
		} else {
			log.Printf("board: logging state to %s at %d baud", cfg.SerialPort, cfg.SerialBaud)
			sinks = append(sinks, s)
			toClose = append(toClose, s)
		}
	}
	return sinks, toClose
}

// RunBoard brings up the board and runs the main loop until ctx is done.
func RunBoard(ctx context.Context, simulate bool) error {
	cfg := config.Get()
	if cfg == nil {
		return errors.New("config not initialized")
	}

	dev, ticks, closer, err := setup(ctx, cfg, simulate)
	if err != nil {
		return err
	}
	defer closer.Close()

	sinks, sinkClosers := openSinks(cfg)
	defer sinkClosers.Close()

	board, err := NewBoard(dev, ticks, WithSinks(sinks...))
	if err != nil {
		return err
	}
	return board.Run(ctx)
}

// RunBoardCheck brings up the board and runs a single Check.
func RunBoardCheck(ctx context.Context, simulate bool) error {
	cfg := config.Get()
	if cfg == nil {
		return errors.New("config not initialized")
	}

	dev, ticks, closer, err := setup(ctx, cfg, simulate)
	if err != nil {
		return err
	}
	defer closer.Close()

	board, err := NewBoard(dev, ticks)
	if err != nil {
		return err
	}
	return board.Check()
}
