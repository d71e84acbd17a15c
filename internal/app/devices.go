// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"errors"
	"fmt"
	"io"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/baseboard/internal/actuators"
	"github.com/relabs-tech/baseboard/internal/config"
	"github.com/relabs-tech/baseboard/internal/display"
	"github.com/relabs-tech/baseboard/internal/sensors"
	"github.com/relabs-tech/baseboard/internal/sim"
	"github.com/relabs-tech/baseboard/internal/tick"
)

// closers releases buses and ports in reverse order of opening.
type closers []io.Closer

func (c closers) Close() error {
	var errs []error
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenDevices brings up every peripheral named in cfg. The period
// temperature sensor times its input against ticks. On failure the buses
// opened so far are released.
func OpenDevices(cfg *config.Config, ticks tick.Source) (_ Devices, _ io.Closer, err error) {
	var opened closers
	defer func() {
		if err != nil {
			opened.Close()
		}
	}()

	if _, err := host.Init(); err != nil {
		return Devices{}, nil, fmt.Errorf("failed to initialize periph: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return Devices{}, nil, fmt.Errorf("failed to open I2C bus %q: %w", cfg.I2CBus, err)
	}
	opened = append(opened, bus)

	var dev Devices
	if dev.Display, err = display.NewOLED(bus); err != nil {
		return Devices{}, nil, err
	}
	log.Println("board: display initialized")

	if cfg.TempSensor == "period" {
		pin, err := sensors.LookupPin(cfg.TempPin)
		if err != nil {
			return Devices{}, nil, fmt.Errorf("temperature: %w", err)
		}
		if dev.Temperature, err = sensors.NewPeriodTemperature(pin, ticks); err != nil {
			return Devices{}, nil, err
		}
	} else if dev.Temperature, err = sensors.NewBMETemperature(bus, cfg.TempI2CAddr); err != nil {
		return Devices{}, nil, err
	}
	log.Printf("board: %s temperature sensor initialized", cfg.TempSensor)

	if dev.Light, err = sensors.NewISL29003(bus, cfg.LightI2CAddr, lightRange(cfg.LightRange)); err != nil {
		return Devices{}, nil, err
	}
	log.Printf("board: light sensor at 0x%02X, range %d lux", cfg.LightI2CAddr, cfg.LightRange)

	if dev.Accel, err = sensors.NewMPU9250(cfg.AccelSPIDevice, cfg.AccelCSPin); err != nil {
		return Devices{}, nil, err
	}
	log.Printf("board: accelerometer initialized on %s", cfg.AccelSPIDevice)

	port, err := spireg.Open(cfg.PotSPIDevice)
	if err != nil {
		return Devices{}, nil, fmt.Errorf("failed to open SPI port %q: %w", cfg.PotSPIDevice, err)
	}
	opened = append(opened, port)
	if dev.Pot, err = sensors.NewMCP3008(port, cfg.PotChannel); err != nil {
		return Devices{}, nil, err
	}

	pins, err := joystickPins(cfg)
	if err != nil {
		return Devices{}, nil, err
	}
	if dev.Joystick, err = sensors.NewGPIOJoystick(pins); err != nil {
		return Devices{}, nil, err
	}

	if dev.LEDs, err = actuators.NewPCA9532(bus, cfg.LEDI2CAddr); err != nil {
		return Devices{}, nil, err
	}
	dev.DAC = actuators.NewMCP4725(bus, cfg.DACI2CAddr)

	motorPin, err := sensors.LookupPin(cfg.MotorPWMPin)
	if err != nil {
		return Devices{}, nil, fmt.Errorf("motor: %w", err)
	}
	dev.Motor = actuators.NewPWMMotor(motorPin, physic.Frequency(cfg.MotorPWMFreqHz)*physic.Hertz)

	log.Println("board: all devices initialized")
	return dev, opened, nil
}

func joystickPins(cfg *config.Config) (sensors.JoystickPins, error) {
	names := [5]string{
		cfg.JoystickCenterPin,
		cfg.JoystickUpPin,
		cfg.JoystickDownPin,
		cfg.JoystickLeftPin,
		cfg.JoystickRightPin,
	}
	var pins [5]gpio.PinIn
	for i, name := range names {
		p, err := sensors.LookupPin(name)
		if err != nil {
			return sensors.JoystickPins{}, fmt.Errorf("joystick: %w", err)
		}
		pins[i] = p
	}
	return sensors.JoystickPins{
		Center: pins[0],
		Up:     pins[1],
		Down:   pins[2],
		Left:   pins[3],
		Right:  pins[4],
	}, nil
}

// lightRange maps a full-scale lux value from the config to the sensor range.
func lightRange(lux int) sensors.LightRange {
	switch lux {
	case 1000:
		return sensors.Range1000
	case 16000:
		return sensors.Range16000
	case 64000:
		return sensors.Range64000
	default:
		return sensors.Range4000
	}
}

// SimDevices returns simulated devices for running without hardware. The
// joystick presses Right every 10 cycles.
func SimDevices() Devices {
	return Devices{
		Joystick:    &sim.Joystick{Every: 10},
		Temperature: sim.NewTemperature(),
		Light:       sim.NewLight(),
		Accel:       sim.NewAccel(),
		Pot:         sim.NewPot(),
		LEDs:        &sim.LEDs{},
		DAC:         &sim.DAC{},
		Motor:       &sim.Motor{},
		Display:     &sim.Display{},
	}
}
