// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds the hardware bindings of the board. Thresholds and loop
// timing are compile-time constants and deliberately not configurable.
type Config struct {
	// Buses
	I2CBus string // periph bus name, "" for the first bus

	// Temperature
	TempSensor  string // "bme280" or "period"
	TempI2CAddr uint16
	TempPin     string // output pin of the period sensor

	// Light
	LightI2CAddr uint16
	LightRange   int // full scale in lux: 1000, 4000, 16000 or 64000

	// Accelerometer
	AccelSPIDevice string
	AccelCSPin     string

	// Potentiometer
	PotSPIDevice string
	PotChannel   int

	// Joystick
	JoystickCenterPin string
	JoystickUpPin     string
	JoystickDownPin   string
	JoystickLeftPin   string
	JoystickRightPin  string

	// Outputs
	LEDI2CAddr     uint16
	DACI2CAddr     uint16
	MotorPWMPin    string
	MotorPWMFreqHz int

	// Telemetry (optional)
	MQTTBroker   string
	MQTTClientID string
	TopicState   string
	SerialPort   string
	SerialBaud   int
}

// Package-level singleton, set once by InitGlobal and read through Get.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the baseboard wiring used when a key is absent.
func Default() *Config {
	return &Config{
		TempSensor:        "bme280",
		TempI2CAddr:       0x76,
		LightI2CAddr:      0x44,
		LightRange:        4000,
		AccelSPIDevice:    "/dev/spidev0.0",
		AccelCSPin:        "GPIO8",
		PotSPIDevice:      "/dev/spidev0.1",
		PotChannel:        0,
		JoystickCenterPin: "GPIO5",
		JoystickUpPin:     "GPIO6",
		JoystickDownPin:   "GPIO13",
		JoystickLeftPin:   "GPIO19",
		JoystickRightPin:  "GPIO26",
		LEDI2CAddr:        0x60,
		DACI2CAddr:        0x62,
		MotorPWMPin:       "GPIO18",
		MotorPWMFreqHz:    1000,
		MQTTClientID:      "baseboard",
		TopicState:        "baseboard/state",
		SerialBaud:        115200,
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads KEY=VALUE lines on top of Default.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	var err error
	switch key {
	case "I2C_BUS":
		c.I2CBus = value

	case "TEMP_SENSOR":
		c.TempSensor = strings.ToLower(value)
	case "TEMP_I2C_ADDR":
		c.TempI2CAddr, err = parseAddr(key, value)
	case "TEMP_PIN":
		c.TempPin = value

	case "LIGHT_I2C_ADDR":
		c.LightI2CAddr, err = parseAddr(key, value)
	case "LIGHT_RANGE":
		c.LightRange, err = parseInt(key, value)

	case "ACCEL_SPI_DEVICE":
		c.AccelSPIDevice = value
	case "ACCEL_CS_PIN":
		c.AccelCSPin = value

	case "POT_SPI_DEVICE":
		c.PotSPIDevice = value
	case "POT_CHANNEL":
		c.PotChannel, err = parseInt(key, value)
		if err == nil && (c.PotChannel < 0 || c.PotChannel > 7) {
			err = fmt.Errorf("POT_CHANNEL must be 0-7, got %d", c.PotChannel)
		}

	case "JOYSTICK_CENTER_PIN":
		c.JoystickCenterPin = value
	case "JOYSTICK_UP_PIN":
		c.JoystickUpPin = value
	case "JOYSTICK_DOWN_PIN":
		c.JoystickDownPin = value
	case "JOYSTICK_LEFT_PIN":
		c.JoystickLeftPin = value
	case "JOYSTICK_RIGHT_PIN":
		c.JoystickRightPin = value

	case "LED_I2C_ADDR":
		c.LEDI2CAddr, err = parseAddr(key, value)
	case "DAC_I2C_ADDR":
		c.DACI2CAddr, err = parseAddr(key, value)
	case "MOTOR_PWM_PIN":
		c.MotorPWMPin = value
	case "MOTOR_PWM_FREQ_HZ":
		c.MotorPWMFreqHz, err = parseInt(key, value)

	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID":
		c.MQTTClientID = value
	case "TOPIC_STATE":
		c.TopicState = value
	case "SERIAL_PORT":
		c.SerialPort = value
	case "SERIAL_BAUD_RATE":
		c.SerialBaud, err = parseInt(key, value)

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return err
}

func parseInt(key, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return v, nil
}

func parseAddr(key, value string) (uint16, error) {
	addr, err := strconv.ParseUint(value, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if addr > 0x7F {
		return 0, fmt.Errorf("%s must be a 7-bit I2C address, got 0x%X", key, addr)
	}
	return uint16(addr), nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	switch c.TempSensor {
	case "bme280":
	case "period":
		if c.TempPin == "" {
			return fmt.Errorf("TEMP_PIN is required when TEMP_SENSOR=period")
		}
	default:
		return fmt.Errorf("TEMP_SENSOR must be bme280 or period, got %q", c.TempSensor)
	}
	switch c.LightRange {
	case 1000, 4000, 16000, 64000:
	default:
		return fmt.Errorf("LIGHT_RANGE must be 1000, 4000, 16000 or 64000, got %d", c.LightRange)
	}
	if c.AccelSPIDevice == "" {
		return fmt.Errorf("ACCEL_SPI_DEVICE is required")
	}
	if c.AccelCSPin == "" {
		return fmt.Errorf("ACCEL_CS_PIN is required")
	}
	for key, pin := range map[string]string{
		"JOYSTICK_CENTER_PIN": c.JoystickCenterPin,
		"JOYSTICK_UP_PIN":     c.JoystickUpPin,
		"JOYSTICK_DOWN_PIN":   c.JoystickDownPin,
		"JOYSTICK_LEFT_PIN":   c.JoystickLeftPin,
		"JOYSTICK_RIGHT_PIN":  c.JoystickRightPin,
	} {
		if pin == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	if c.MotorPWMFreqHz <= 0 {
		return fmt.Errorf("MOTOR_PWM_FREQ_HZ must be positive, got %d", c.MotorPWMFreqHz)
	}
	if c.SerialPort != "" && c.SerialBaud <= 0 {
		return fmt.Errorf("SERIAL_BAUD_RATE must be positive, got %d", c.SerialBaud)
	}
	if c.MQTTBroker != "" && c.TopicState == "" {
		return fmt.Errorf("TOPIC_STATE is required when MQTT_BROKER is set")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Only the first
// call loads anything.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance, nil before InitGlobal.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
