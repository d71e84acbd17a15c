// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"log"

	"periph.io/x/devices/v3/mpu9250"

	"github.com/relabs-tech/baseboard/internal/imu"
)

// MPU9250 is the board accelerometer on SPI.
type MPU9250 struct {
	imu *mpu9250.MPU9250
}

// NewMPU9250 brings up the MPU9250 on spiDev with chip select csPin.
// Self-test and calibration failures are logged, not fatal.
func NewMPU9250(spiDev, csPin string) (*MPU9250, error) {
	cs, err := LookupPin(csPin)
	if err != nil {
		return nil, fmt.Errorf("accel: CS: %w", err)
	}

	tr, err := mpu9250.NewSpiTransport(spiDev, cs)
	if err != nil {
		return nil, fmt.Errorf("accel: SPI transport (%s): %w", spiDev, err)
	}

	dev, err := mpu9250.New(tr)
	if err != nil {
		return nil, fmt.Errorf("accel: device creation: %w", err)
	}

	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("accel: initialization: %w", err)
	}

	if res, err := dev.SelfTest(); err != nil {
		log.Printf("accel: WARNING: self-test failed: %v", err)
	} else {
		log.Printf("accel: self-test passed, deviation X: %.2f%%, Y: %.2f%%, Z: %.2f%%",
			res.AccelDeviation.X, res.AccelDeviation.Y, res.AccelDeviation.Z)
	}

	if err := dev.Calibrate(); err != nil {
		log.Printf("accel: WARNING: calibration failed: %v", err)
	} else {
		log.Println("accel: calibration complete")
	}

	return &MPU9250{imu: dev}, nil
}

// ReadAccel reads all three axes.
func (s *MPU9250) ReadAccel() (imu.Accel, error) {
	ax, err := s.imu.GetAccelerationX()
	if err != nil {
		return imu.Accel{}, fmt.Errorf("accel X: %w", err)
	}
	ay, err := s.imu.GetAccelerationY()
	if err != nil {
		return imu.Accel{}, fmt.Errorf("accel Y: %w", err)
	}
	az, err := s.imu.GetAccelerationZ()
	if err != nil {
		return imu.Accel{}, fmt.Errorf("accel Z: %w", err)
	}
	return imu.Accel{X: int32(ax), Y: int32(ay), Z: int32(az)}, nil
}
