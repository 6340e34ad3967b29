// internal/config/normalize.go
package config

import "strings"

// defaultTickIntervalMs approximates the hardware's 32768 Hz / 2048
// tick: 16 phases per second.
const defaultTickIntervalMs = 62

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Device.AddressPinHigh == nil {
		// strap pin pulls up by default
		high := true
		cfg.Device.AddressPinHigh = &high
	}

	if cfg.Device.TickIntervalMs == 0 {
		cfg.Device.TickIntervalMs = defaultTickIntervalMs
	}

	for i := range cfg.Alarms {
		a := &cfg.Alarms[i]
		for j, d := range a.Days {
			a.Days[j] = strings.ToLower(strings.TrimSpace(d))
		}
	}
}
