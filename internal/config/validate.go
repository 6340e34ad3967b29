// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Device.TickIntervalMs < 0 {
		return fmt.Errorf("device: tick_interval_ms must be >= 0 (0 selects the default)")
	}

	// ------------------------------------------------------------
	// ALARM SLOT VALIDATION
	// ------------------------------------------------------------

	// key = slot number
	slotOwner := make(map[int]bool)

	for i, a := range cfg.Alarms {
		if a.Slot < 1 || a.Slot > 6 {
			return fmt.Errorf("alarm %d: slot %d out of range 1-6", i, a.Slot)
		}
		if slotOwner[a.Slot] {
			return fmt.Errorf("alarm %d: slot %d configured twice", i, a.Slot)
		}
		slotOwner[a.Slot] = true

		if a.Minute < 0 || a.Minute > 59 {
			return fmt.Errorf("alarm slot %d: minute %d out of range 0-59", a.Slot, a.Minute)
		}
		if a.Hour < 0 || a.Hour > 23 {
			return fmt.Errorf("alarm slot %d: hour %d out of range 0-23", a.Slot, a.Hour)
		}

		for _, d := range a.Days {
			if _, ok := dayBits[strings.ToLower(strings.TrimSpace(d))]; !ok {
				return fmt.Errorf("alarm slot %d: unknown day %q (want mon..sun)", a.Slot, d)
			}
		}

		if !a.AnyDay && len(a.Days) == 0 {
			return fmt.Errorf("alarm slot %d: no days selected and any_day not set; alarm would never fire", a.Slot)
		}
	}

	return nil
}
