package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sensor source kinds.
const (
	SourceMock   = "mock"
	SourceSerial = "serial"
	SourceMQTT   = "mqtt"
	SourceBMP    = "bmp280"
)

// DefaultUpdateInterval applies when update_interval is missing, unparseable or not positive.
const DefaultUpdateInterval = 1000 * time.Millisecond

// Config represents the application configuration.
type Config struct {
	Sensor  SensorConfig  `yaml:"sensor"`
	Display DisplayConfig `yaml:"display"`
	Mock    MockConfig    `yaml:"mock"`
}

// SensorConfig selects and configures the pressure source.
type SensorConfig struct {
	Source string       `yaml:"source"` // mock, serial, mqtt or bmp280
	Serial SerialConfig `yaml:"serial"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
	BMP    BMPConfig    `yaml:"bmp"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// MQTTConfig contains broker and topic of a pressure feed.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

// BMPConfig contains I2C settings of a BMP280 sensor.
type BMPConfig struct {
	Bus     string        `yaml:"bus"` // empty selects the first available bus
	Address uint16        `yaml:"address"`
	Rate    time.Duration `yaml:"rate"`
}

// DisplayConfig contains the reloadable display options.
type DisplayConfig struct {
	UpdateInterval string        `yaml:"update_interval"` // milliseconds, string-encoded
	PressureUnit   string        `yaml:"pressure_unit"`   // hPa, mmHg, bar, atm or m
	HistorySize    int           `yaml:"history_size"`
	NeedleDuration time.Duration `yaml:"needle_duration"`
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	BasePressure float64       `yaml:"base_pressure"` // hPa
	Amplitude    float64       `yaml:"amplitude"`     // hPa
	Period       time.Duration `yaml:"period"`        // drift period
	NoiseLevel   float64       `yaml:"noise_level"`   // hPa
	SampleRate   time.Duration `yaml:"sample_rate"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Sensor: SensorConfig{
			Source: SourceMock,
			Serial: SerialConfig{
				Port:     "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
				BaudRate: 115200,
			},
			MQTT: MQTTConfig{
				Broker:   "tcp://localhost:1883",
				Topic:    "barosense/pressure",
				ClientID: "barosense",
			},
			BMP: BMPConfig{
				Address: 0x76,
				Rate:    200 * time.Millisecond,
			},
		},
		Display: DisplayConfig{
			UpdateInterval: "1000",
			PressureUnit:   "hPa",
			HistorySize:    100,
			NeedleDuration: 500 * time.Millisecond,
		},
		Mock: MockConfig{
			BasePressure: 1013.25,
			Amplitude:    2.0,
			Period:       60 * time.Second,
			NoiseLevel:   0.05,
			SampleRate:   100 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Interval returns the parsed update interval. Unparseable or non-positive
// values fall back to DefaultUpdateInterval.
func (d DisplayConfig) Interval() time.Duration {
	ms, err := strconv.ParseInt(strings.TrimSpace(d.UpdateInterval), 10, 64)
	if err != nil || ms <= 0 {
		return DefaultUpdateInterval
	}
	return time.Duration(ms) * time.Millisecond
}

// ensureDefaults ensures that all required fields have default values if missing.
// update_interval and pressure_unit are left as written; they fall back when parsed.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Sensor.Source == "" {
		c.Sensor.Source = def.Sensor.Source
	}
	if c.Sensor.Serial.Port == "" {
		c.Sensor.Serial.Port = def.Sensor.Serial.Port
	}
	if c.Sensor.Serial.BaudRate == 0 {
		c.Sensor.Serial.BaudRate = def.Sensor.Serial.BaudRate
	}
	if c.Sensor.MQTT.Broker == "" {
		c.Sensor.MQTT.Broker = def.Sensor.MQTT.Broker
	}
	if c.Sensor.MQTT.Topic == "" {
		c.Sensor.MQTT.Topic = def.Sensor.MQTT.Topic
	}
	if c.Sensor.MQTT.ClientID == "" {
		c.Sensor.MQTT.ClientID = def.Sensor.MQTT.ClientID
	}
	if c.Sensor.BMP.Address == 0 {
		c.Sensor.BMP.Address = def.Sensor.BMP.Address
	}
	if c.Sensor.BMP.Rate == 0 {
		c.Sensor.BMP.Rate = def.Sensor.BMP.Rate
	}

	if c.Display.HistorySize <= 0 {
		c.Display.HistorySize = def.Display.HistorySize
	}
	if c.Display.NeedleDuration == 0 {
		c.Display.NeedleDuration = def.Display.NeedleDuration
	}

	if c.Mock.BasePressure == 0 {
		c.Mock.BasePressure = def.Mock.BasePressure
	}
	if c.Mock.Period == 0 {
		c.Mock.Period = def.Mock.Period
	}
	if c.Mock.SampleRate == 0 {
		c.Mock.SampleRate = def.Mock.SampleRate
	}
}
