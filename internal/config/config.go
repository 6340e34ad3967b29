// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Alarms  []AlarmConfig `yaml:"alarms"`
	Console ConsoleConfig `yaml:"console"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	// AddressPinHigh models the boot-time address strap pin.
	// High (default) selects 0x41, low selects 0x43.
	AddressPinHigh *bool `yaml:"address_pin_high"`

	// TickIntervalMs is the sub-second phase period of the host tick
	// source. 16 phases make one device second; the default of 62ms
	// approximates real time.
	TickIntervalMs int `yaml:"tick_interval_ms"`

	// DedicatedOutputs routes the six per-alarm interrupt lines in
	// addition to the unison line.
	DedicatedOutputs bool `yaml:"dedicated_outputs"`
}

// ---- ALARMS ----

type AlarmConfig struct {
	Slot    int      `yaml:"slot"` // 1-6
	Minute  int      `yaml:"minute"`
	Hour    int      `yaml:"hour"`
	Days    []string `yaml:"days"` // mon..sun
	AnyDay  bool     `yaml:"any_day"`
	Enabled bool     `yaml:"enabled"`
}

// ---- CONSOLE ----

type ConsoleConfig struct {
	// Listen is the TCP address of the bus console. Empty disables it.
	Listen string `yaml:"listen"`
}

// Load reads and parses a yaml config file. Validation is separate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return &cfg, nil
}

// dayBits maps config day names to their one-hot mask bit
// (bit 0 = Monday .. bit 6 = Sunday).
var dayBits = map[string]byte{
	"mon": 1 << 0,
	"tue": 1 << 1,
	"wed": 1 << 2,
	"thu": 1 << 3,
	"fri": 1 << 4,
	"sat": 1 << 5,
	"sun": 1 << 6,
}

// DayMask returns the alarm's day mask register value: the one-hot day
// bits, with bit 7 set when the alarm ignores days entirely.
func (a AlarmConfig) DayMask() byte {
	var mask byte
	for _, d := range a.Days {
		mask |= dayBits[d]
	}
	if a.AnyDay {
		mask |= 0x80
	}
	return mask
}
