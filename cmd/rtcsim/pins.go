// cmd/rtcsim/pins.go
package main

import (
	"sync"

	"github.com/rs/zerolog"
)

// logPins stands in for the device's output pins. Wave toggles arrive
// from the tick goroutine, alarm lines from the run loop; level changes
// are logged, repeated deassert requests are not.
type logPins struct {
	log zerolog.Logger

	mu        sync.Mutex
	wave      bool
	unison    bool
	dedicated [6]bool
}

func newLogPins(log zerolog.Logger) *logPins {
	return &logPins{log: log}
}

func (p *logPins) ToggleWave() {
	p.mu.Lock()
	p.wave = !p.wave
	high := p.wave
	p.mu.Unlock()
	p.log.Debug().Bool("high", high).Msg("pin: 1hz wave")
}

func (p *logPins) SetUnison(high bool) {
	p.mu.Lock()
	changed := p.unison != high
	p.unison = high
	p.mu.Unlock()
	if changed {
		p.log.Info().Bool("high", high).Msg("pin: unison alarm interrupt")
	}
}

func (p *logPins) SetDedicated(n int, high bool) {
	p.mu.Lock()
	changed := p.dedicated[n] != high
	p.dedicated[n] = high
	p.mu.Unlock()
	if changed {
		p.log.Info().Int("alarm", n+1).Bool("high", high).Msg("pin: dedicated alarm interrupt")
	}
}
